package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// ok answers with the mutation/detail envelope the client expects.
func ok(c *gin.Context, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// fail maps a domain error to its HTTP status and error body. Validation
// errors carry the per-field map under "errors".
func fail(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)
	body := gin.H{"success": false, "message": errorMessage(err)}

	if fields, found := domain.FieldErrorsOf(err); found {
		body["errors"] = fields
	}
	c.JSON(status, body)
}

func errorMessage(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Server Error"
}
