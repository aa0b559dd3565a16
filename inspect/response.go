package inspect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scopekit/errors"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// respondError sends the structured body of err, or a generic 500 when err
// is not an AppError.
func respondError(c *gin.Context, err error) {
	appErr := errors.Wrap(err)
	c.JSON(statusFor(appErr.Code), appErr.ToResponse())
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeNoProvider, errors.ErrCodeScopeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeTypeMismatch, errors.ErrCodeInjectionFailed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
