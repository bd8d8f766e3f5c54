package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/logger"
	"tradedesk/internal/middleware"
)

// currentActor returns the principal acting on the request, nil when anonymous.
func currentActor(c *gin.Context) *auth.Principal {
	return middleware.CurrentPrincipal(c)
}

// remoteUser returns the username of the authenticated caller, empty when anonymous.
func remoteUser(c *gin.Context) string {
	if p := middleware.CurrentPrincipal(c); p != nil {
		return p.Username
	}
	return ""
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// bindError converts a binding failure into an AppError. Constraint
// violations become VALIDATION_FAILED with one message per field, keyed by
// the submitted field name; anything else (malformed body, unparsable
// number) is INVALID_INPUT.
func bindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return apperrors.WithFields(apperrors.ErrValidationFailed, fields)
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.StructField())
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is mandatory"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "gte":
		return label + " must be a positive number"
	case "role":
		return label + " must be USER or ADMIN"
	}
	return label + " is invalid"
}

// humanize turns a Go field name into a label: "BidQuantity" becomes
// "Bid quantity", "SQLStr" becomes "SQL str", "SourceListID" becomes
// "Source list ID".
func humanize(field string) string {
	r := []rune(field)
	var words []string
	start := 0
	for i := 1; i < len(r); i++ {
		lowerToUpper := unicode.IsLower(r[i-1]) && unicode.IsUpper(r[i])
		acronymEnd := unicode.IsUpper(r[i-1]) && unicode.IsUpper(r[i]) &&
			i+1 < len(r) && unicode.IsLower(r[i+1])
		if lowerToUpper || acronymEnd {
			words = append(words, string(r[start:i]))
			start = i
		}
	}
	words = append(words, string(r[start:]))

	for i := 1; i < len(words); i++ {
		if !isAcronym(words[i]) {
			words[i] = strings.ToLower(words[i])
		}
	}
	return strings.Join(words, " ")
}

func isAcronym(word string) bool {
	if len(word) < 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and field
// messages. Otherwise it logs the unexpected error and returns a generic
// internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.StatusCode, gin.H{"error": body})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
