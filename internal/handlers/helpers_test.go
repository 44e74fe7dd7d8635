package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"finfolio/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

const testUserID = "0192aa11-0000-7000-8000-000000000001"

// authInject stands in for the JWT middleware in handler tests.
func authInject(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// mockAudit records audit calls without a database.
type mockAudit struct {
	actions []string
}

func (m *mockAudit) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	m.actions = append(m.actions, action)
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, wantCode string) {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	if code, _ := errObj["code"].(string); code != wantCode {
		t.Errorf("error code = %q, want %q", code, wantCode)
	}
}
