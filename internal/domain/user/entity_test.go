//go:build unit

package user_test

import (
	"testing"

	"salon-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		errIs error
	}{
		{name: "customer ロールOK", in: "customer"},
		{name: "staff ロールOK", in: "staff"},
		{name: "admin ロールOK", in: "admin"},
		{name: "無効なロールNG", in: "operator", errIs: user.ErrInvalidRole},
		{name: "空のロールNG", in: "", errIs: user.ErrInvalidRole},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			role, err := user.NewRole(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.in, role.String())
		})
	}
}

func TestPrincipal(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("本人は自分として行動できる", func(t *testing.T) {
		p := user.Principal{ID: self, Role: user.RoleCustomer}
		assert.True(t, p.ActsFor(self))
		assert.False(t, p.ActsFor(other))
	})

	t.Run("管理者は誰としても行動できる", func(t *testing.T) {
		p := user.Principal{ID: self, Role: user.RoleAdmin}
		assert.True(t, p.ActsFor(other))
	})
}

func TestEmail(t *testing.T) {
	_, err := user.NewEmail("invalid-email")
	require.ErrorIs(t, err, user.ErrInvalidEmail)

	e, err := user.NewEmail("  staff@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", e.Value())
}
