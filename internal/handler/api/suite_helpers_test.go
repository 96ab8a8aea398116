//go:build unit

package api_test

import (
	"errors"
	"net/http"

	"salon-booking/internal/domain/user"
	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errDBDown = errs.Mark(errors.New("connection refused"), errs.ErrTransient)

// fakeAuth stands in for the JWT middleware and authenticates every request
// that carries an Authorization header as *principal.
func fakeAuth(principal *user.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetPrincipal(c, *principal)
		c.Next()
	}
}

type errorCase struct {
	name       string
	err        error
	expectCode int
	expectMsg  string
}
