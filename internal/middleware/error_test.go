package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "tradedesk/internal/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{name: "not_found", err: apperrors.NotFound("trade", 3), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "duplicate_username", err: apperrors.ErrDuplicateUsername, wantStatus: http.StatusConflict, wantCode: "DUPLICATE_USERNAME", wantField: "username"},
		{name: "wrapped_internal", err: apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down")), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
		{name: "plain_error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			errObj, _ := parseBody(t, rec)["error"].(map[string]interface{})
			if code, _ := errObj["code"].(string); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if tt.wantField != "" {
				fields, _ := errObj["fields"].(map[string]interface{})
				if _, ok := fields[tt.wantField]; !ok {
					t.Errorf("expected field %q in %v", tt.wantField, errObj)
				}
			}
			if tt.err.Error() == "boom" {
				if msg, _ := errObj["message"].(string); msg == "boom" {
					t.Error("internal details leaked to client")
				}
			}
		})
	}
}
