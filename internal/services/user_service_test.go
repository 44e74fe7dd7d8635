package services

import (
	"testing"
	"time"

	"finfolio/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice@example.com", "password123", "Alice", "Smith")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected a user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if !user.IsActive {
			t.Error("expected user to be active")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("dup@example.com", "password456", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("empty_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice@EXAMPLE.COM", "password123", "", "")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.CreateTestUserWithEmail(t, db, "login@example.com")
		user, err := svc.AttemptLogin("login@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.LastLoginAt == nil {
			t.Error("expected last login time to be recorded")
		}
		if user.FailedLoginAttempts != 0 {
			t.Errorf("expected reset failure counter, got %d", user.FailedLoginAttempts)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.CreateTestUserWithEmail(t, db, "wrong@example.com")
		_, err := svc.AttemptLogin("wrong@example.com", "not-the-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_indistinguishable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("ghost@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("lockout_after_repeated_failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.CreateTestUserWithEmail(t, db, "lock@example.com")
		for i := 0; i < maxFailedLogins; i++ {
			_, err := svc.AttemptLogin("lock@example.com", "bad-password")
			testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
		}

		// Even the correct password is rejected while locked.
		_, err := svc.AttemptLogin("lock@example.com", "password123")
		testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
	})

	t.Run("expired_lock_allows_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUserWithEmail(t, db, "unlock@example.com")
		past := time.Now().Add(-time.Minute)
		db.Model(user).Updates(map[string]interface{}{
			"failed_login_attempts": maxFailedLogins,
			"locked_until":          past,
		})

		_, err := svc.AttemptLogin("unlock@example.com", "password123")
		testutil.AssertNoError(t, err)
	})
}

func TestRefreshTokenHash(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "abc123"))

		hash, err := svc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if hash != "abc123" {
			t.Errorf("expected stored hash abc123, got %s", hash)
		}
	})

	t.Run("rotation_replaces_hash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "first"))
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "second"))

		hash, err := svc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if hash != "second" {
			t.Errorf("expected rotated hash, got %s", hash)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.StoreRefreshTokenHash("0192aa11-0000-7000-8000-00000000dead", "x")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
