package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var setupOnce sync.Once

// SetupValidator names fields after their json (or form) tag, validates
// decimal.Decimal as a number and registers the currency tag. Safe to call
// repeatedly.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("currency", isCurrency)
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

// isCurrency accepts a recognised ISO 4217 code in any case
func isCurrency(fl validator.FieldLevel) bool {
	_, err := currency.ParseISO(strings.ToUpper(fl.Field().String()))
	return err == nil
}

// decimalValue lets gt, gte, lte and friends compare decimal fields
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// ValidationDetails lists one message per failing field, or nil when err
// did not come from the validator
func ValidationDetails(err error) []dto.ValidationDetail {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	out := make([]dto.ValidationDetail, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)}
	}
	return out
}

// FormatValidationErrors builds the 400 body. Bodies that failed to decode
// carry the decoder message and no details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	details := ValidationDetails(err)
	if details == nil && err != nil {
		return dto.Invalid("Invalid request body: "+err.Error(), requestID, nil)
	}
	return dto.Invalid("Request validation failed", requestID, details)
}

func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)
	if requestID == "" {
		requestID = c.GetHeader(RequestIDHeader)
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
}

var fixedMessages = map[string]string{
	"required":      "This field is required",
	"required_with": "This field is required here",
	"required_if":   "This field is required here",
	"email":         "Invalid email format",
	"uuid":          "Invalid UUID format",
	"url":           "Invalid URL format",
	"numeric":       "Must be numeric",
	"alphanum":      "Must be alphanumeric",
	"alpha":         "Must contain only letters",
	"dive":          "Contains an invalid entry",
	"currency":      "Must be an ISO 4217 currency code",
}

var boundMessages = map[string]string{
	"gte":   "Must be greater than or equal to ",
	"lte":   "Must be less than or equal to ",
	"gt":    "Must be greater than ",
	"lt":    "Must be less than ",
	"oneof": "Must be one of: ",
}

func fieldMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	if msg, ok := fixedMessages[tag]; ok {
		return msg
	}
	if prefix, ok := boundMessages[tag]; ok {
		return prefix + fe.Param()
	}
	text := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if text {
			return "Must be at least " + fe.Param() + " characters"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if text {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Must be at most " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	}
	return "Invalid value"
}
