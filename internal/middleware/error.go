package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/logger"
)

// ErrorHandler renders the last error a handler attached to the context,
// unless the handler already wrote a response. Internal causes are logged
// with the request id and never rendered.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := asAppError(c.Errors.Last().Err)
		if appErr.Internal != nil {
			logger.Get().Errorw("request failed",
				"request_id", RequestID(c),
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"error": errorBody(appErr)})
	}
}

// asAppError classifies err; anything that is not an AppError becomes an
// internal error carrying it as the cause.
func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func errorBody(appErr *apperrors.AppError) gin.H {
	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	return body
}
