//go:build unit

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-booking/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	id   uuid.UUID
	role user.Role
	err  error
}

func (s stubValidator) ValidateToken(string) (user.Principal, error) {
	if s.err != nil {
		return user.Principal{}, s.err
	}
	return user.Principal{ID: s.id, Role: s.role}, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	staffID := uuid.New()

	newRouter := func(v stubValidator, minRole user.Role) *gin.Engine {
		m := NewAuthMiddleware(v)
		r := gin.New()
		r.GET("/protected", m.RequireAuth(), m.RequireRoleAtLeast(minRole), func(c *gin.Context) {
			p, _ := GetPrincipal(c)
			c.JSON(http.StatusOK, gin.H{"id": p.ID.String(), "role": string(p.Role)})
		})
		return r
	}

	tests := []struct {
		name       string
		validator  stubValidator
		header     string
		minRole    user.Role
		expectCode int
	}{
		{
			name:       "正常系: 有効なトークン",
			validator:  stubValidator{id: staffID, role: user.RoleStaff},
			header:     "Bearer good",
			minRole:    user.RoleStaff,
			expectCode: http.StatusOK,
		},
		{
			name:       "正常系: 上位ロールは通る",
			validator:  stubValidator{id: staffID, role: user.RoleAdmin},
			header:     "Bearer good",
			minRole:    user.RoleStaff,
			expectCode: http.StatusOK,
		},
		{
			name:       "異常系: ヘッダなし",
			minRole:    user.RoleCustomer,
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "異常系: Bearer 以外の形式",
			header:     "Basic abc",
			minRole:    user.RoleCustomer,
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "異常系: 無効なトークン",
			validator:  stubValidator{err: errors.New("expired")},
			header:     "Bearer bad",
			minRole:    user.RoleCustomer,
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "異常系: ロール不足",
			validator:  stubValidator{id: staffID, role: user.RoleCustomer},
			header:     "Bearer good",
			minRole:    user.RoleAdmin,
			expectCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(tt.validator, tt.minRole)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectCode, rec.Code)
			if tt.expectCode == http.StatusOK {
				assert.Contains(t, rec.Body.String(), staffID.String())
			}
		})
	}
}
