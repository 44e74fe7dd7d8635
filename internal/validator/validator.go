// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finfolio/internal/analytics"
)

// validCurrencies contains ISO 4217 currency codes.
var validCurrencies = map[string]bool{
	"AED": true, "ARS": true, "AUD": true, "BGN": true, "BHD": true,
	"BRL": true, "CAD": true, "CHF": true, "CLP": true, "CNY": true,
	"COP": true, "CZK": true, "DKK": true, "EGP": true, "EUR": true,
	"GBP": true, "HKD": true, "HUF": true, "IDR": true, "ILS": true,
	"INR": true, "ISK": true, "JPY": true, "KRW": true, "KWD": true,
	"MAD": true, "MXN": true, "MYR": true, "NGN": true, "NOK": true,
	"NZD": true, "OMR": true, "PEN": true, "PHP": true, "PKR": true,
	"PLN": true, "QAR": true, "RON": true, "RSD": true, "SAR": true,
	"SEK": true, "SGD": true, "THB": true, "TRY": true, "TWD": true,
	"UAH": true, "USD": true, "VND": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("asset_category", validateAssetCategory)
		_ = v.RegisterValidation("alert_kind", validateAlertKind)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	return analytics.Category(fl.Field().String()).Valid()
}

func validateAlertKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "maturity", "price_target", "custom":
		return true
	}
	return false
}
