package middleware

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/eaglebank/accounts/shared/errors"
	"github.com/eaglebank/accounts/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("account_status", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseAccountStatus(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(fmt.Sprintf("register account_status validation: %v", err))
	}
	return v
}

// ValidateRequest runs struct-tag validation and returns one entry per
// failing field, or nil.
func ValidateRequest(obj any) []models.FieldError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []models.FieldError{{Message: err.Error(), Type: "invalid"}}
	}

	validationErrors := make([]models.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, models.FieldError{
			Field:   fe.Field(),
			Message: getErrorMsg(fe),
			Type:    fe.Tag(),
		})
	}

	return validationErrors
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long"
	case "account_status":
		return "Must be one of ACTIVE, SUSPENDED, CLOSED"
	default:
		return "Invalid value"
	}
}

// RespondWithValidationError writes a 400 error envelope listing the
// rejected fields.
func RespondWithValidationError(c *gin.Context, process string, validationErrors []models.FieldError) {
	env := models.NewErrorEnvelope(http.StatusBadRequest, "Invalid request data", process, models.ErrorMessage{
		Error:   "request validation failed",
		Code:    string(apperrors.CodeInvalidRequestPayload),
		Details: validationErrors,
	})
	RespondWithEnvelope(c, env)
}

// RespondWithError writes an error envelope with a bare message body.
func RespondWithError(c *gin.Context, code int, process, message string) {
	RespondWithEnvelope(c, models.NewErrorEnvelope(code, message, process, models.ErrorMessage{Error: message}))
}

// RespondWithEnvelope writes env using its status code as the HTTP status.
func RespondWithEnvelope(c *gin.Context, env models.Envelope) {
	c.JSON(env.StatusCode(), env.Payload())
}
