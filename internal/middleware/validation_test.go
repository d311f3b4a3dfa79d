package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Test struct mirroring the product creation payload constraints.
type productRequest struct {
	Name     string   `json:"name" validate:"required,max=50"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"required"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includePrice bool, includeQuantity bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "Mug"
			}
			if includePrice {
				reqMap["price"] = 9.99
			}
			if includeQuantity {
				reqMap["quantity"] = 4
			}

			allFieldsPresent := includeName && includePrice && includeQuantity

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/products/", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var parsed productRequest
			err := DecodeAndValidate(req, &parsed)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func(price float64) bool {
			if price >= 0 {
				price = -1 - price
			}

			reqMap := map[string]interface{}{
				"name":     "Mug",
				"price":    price, // below the gte=0 bound
				"quantity": 4,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/products/", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var parsed productRequest
			err := DecodeAndValidate(req, &parsed)
			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}

			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
		gen.Float64Range(-10_000, 10_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_NameLengthValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("names longer than the column limit are rejected", prop.ForAll(
		func(name string) bool {
			reqMap := map[string]interface{}{
				"name":     name,
				"price":    9.99,
				"quantity": 4,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/products/", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var parsed productRequest
			err := DecodeAndValidate(req, &parsed)

			if len(name) >= 1 && len(name) <= 50 {
				return err == nil
			}
			return err != nil
		},
		gen.RegexMatch(`[A-Za-z0-9]{0,80}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_NonNegativePriceValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("negative prices are rejected, zero and positive pass", prop.ForAll(
		func(price float64) bool {
			reqMap := map[string]interface{}{
				"name":     "Mug",
				"price":    price,
				"quantity": 4,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/products/", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var parsed productRequest
			err := DecodeAndValidate(req, &parsed)

			if price >= 0 {
				return err == nil
			}
			return err != nil
		},
		gen.Float64Range(-10_000, 10_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/products/", bytes.NewReader([]byte(`{"name": `)))
	req.Header.Set("Content-Type", "application/json")

	var parsed productRequest
	if err := DecodeAndValidate(req, &parsed); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
