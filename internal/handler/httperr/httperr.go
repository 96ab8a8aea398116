package httperr

import (
	"net/http"

	"salon-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// New creates a transport-level error for rejections that never reach a usecase.
func New(msg string) error {
	return errs.New(msg)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithUsecaseError maps an error kind onto its status code. Unknown failures
// are reported without their message.
func AbortWithUsecaseError(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	if status == http.StatusInternalServerError {
		AbortWithError(c, status, err, "Internal server error", nil)
		return
	}
	AbortWithError(c, status, err, msg, nil)
}

func StatusOf(err error) (int, string) {
	switch errs.KindOf(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound, rootMessage(err)
	case errs.ErrForbidden:
		return http.StatusForbidden, rootMessage(err)
	case errs.ErrConflict:
		return http.StatusConflict, rootMessage(err)
	case errs.ErrVerificationFailed:
		return http.StatusBadRequest, rootMessage(err)
	case errs.ErrValidation:
		return http.StatusBadRequest, rootMessage(err)
	case errs.ErrTransient:
		return http.StatusServiceUnavailable, "Temporarily unavailable, please retry"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func rootMessage(err error) string {
	return errs.UnwrapAll(err).Error()
}
