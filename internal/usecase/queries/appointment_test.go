//go:build unit

package queries_test

import (
	"context"
	"testing"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppointmentByID(t *testing.T) {
	ctx := context.Background()

	f := newCatalogFixture(60)
	customerID := f.ledger.AddCustomer("Ravi")
	appt := f.seedAppointment(t, customerID, "09:00:00", "10:00:00", appointment.StatusPending)
	q := queries.NewAppointmentQueries(f.ledger)

	allowed := []struct {
		name  string
		actor user.Principal
	}{
		{name: "正常系: 予約した顧客", actor: user.Principal{ID: customerID, Role: user.RoleCustomer}},
		{name: "正常系: 担当者", actor: user.Principal{ID: f.staffID, Role: user.RoleStaff}},
		{name: "正常系: 管理者", actor: user.Principal{ID: f.ledger.AddAdmin("Root"), Role: user.RoleAdmin}},
	}
	for _, tt := range allowed {
		t.Run(tt.name, func(t *testing.T) {
			view, err := q.GetByID(ctx, appt.ID(), tt.actor)

			require.NoError(t, err)
			assert.Equal(t, appt.ID(), view.ID)
			assert.Equal(t, "2026-10-19", view.Date)
			assert.Equal(t, "09:00:00", view.StartTime)
			assert.Equal(t, "pending", view.Status)
			require.NotNil(t, view.Payment)
			assert.Equal(t, "created", view.Payment.Status)
			assert.Equal(t, int64(50000), view.Payment.AmountMinor)
		})
	}

	t.Run("異常系: 無関係の顧客は閲覧できない", func(t *testing.T) {
		_, err := q.GetByID(ctx, appt.ID(), user.Principal{ID: f.ledger.AddCustomer("Other"), Role: user.RoleCustomer})
		assert.ErrorIs(t, err, shared.ErrNotAllowed)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("異常系: 予約が存在しない", func(t *testing.T) {
		_, err := q.GetByID(ctx, uuid.New(), user.Principal{ID: customerID, Role: user.RoleCustomer})
		assert.ErrorIs(t, err, shared.ErrAppointmentNotFound)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestListAppointmentsByCustomer(t *testing.T) {
	ctx := context.Background()

	f := newCatalogFixture(60)
	ravi := f.ledger.AddCustomer("Ravi")
	meena := f.ledger.AddCustomer("Meena")
	tuesday := monday.AddDate(0, 0, 1)
	early := f.seedAppointmentOn(t, monday, ravi, "09:00:00", "10:00:00", appointment.StatusConfirmed)
	late := f.seedAppointmentOn(t, monday, ravi, "14:00:00", "15:00:00", appointment.StatusPending)
	next := f.seedAppointmentOn(t, tuesday, ravi, "09:00:00", "10:00:00", appointment.StatusCancelled)
	other := f.seedAppointmentOn(t, monday, meena, "11:00:00", "12:00:00", appointment.StatusPending)
	q := queries.NewAppointmentQueries(f.ledger)

	ids := func(views []*queries.AppointmentView) []uuid.UUID {
		out := make([]uuid.UUID, len(views))
		for i, v := range views {
			out[i] = v.ID
		}
		return out
	}

	t.Run("正常系: 顧客には自分の予約だけが日付と開始時刻の降順で返る", func(t *testing.T) {
		views, cursor, err := q.ListByCustomer(ctx, user.Principal{ID: ravi, Role: user.RoleCustomer}, nil, 0)

		require.NoError(t, err)
		assert.Nil(t, cursor)
		assert.Equal(t, []uuid.UUID{next.ID(), late.ID(), early.ID()}, ids(views))
		require.NotNil(t, views[1].Payment)
		assert.Equal(t, int64(50000), views[1].Payment.AmountMinor)
	})

	t.Run("正常系: 管理者には全顧客の予約が返る", func(t *testing.T) {
		admin := user.Principal{ID: f.ledger.AddAdmin("Root"), Role: user.RoleAdmin}

		views, _, err := q.ListByCustomer(ctx, admin, nil, 0)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{next.ID(), late.ID(), other.ID(), early.ID()}, ids(views))
	})

	t.Run("正常系: カーソルで次のページを辿れる", func(t *testing.T) {
		actor := user.Principal{ID: ravi, Role: user.RoleCustomer}

		first, cursor, err := q.ListByCustomer(ctx, actor, nil, 2)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{next.ID(), late.ID()}, ids(first))
		require.NotNil(t, cursor)

		second, cursor, err := q.ListByCustomer(ctx, actor, cursor, 2)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{early.ID()}, ids(second))
		assert.Nil(t, cursor)
	})

	t.Run("正常系: 予約のない顧客には空の一覧", func(t *testing.T) {
		views, cursor, err := q.ListByCustomer(ctx, user.Principal{ID: f.ledger.AddCustomer("New"), Role: user.RoleCustomer}, nil, 0)

		require.NoError(t, err)
		assert.Empty(t, views)
		assert.Nil(t, cursor)
	})

	t.Run("異常系: 壊れたカーソルは検証エラー", func(t *testing.T) {
		_, _, err := q.ListByCustomer(ctx, user.Principal{ID: ravi, Role: user.RoleCustomer}, &queries.Cursor{After: "not-a-cursor"}, 0)

		assert.True(t, errs.Is(err, queries.ErrInvalidCursor))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestAfterCursor(t *testing.T) {
	t.Run("正常系: 位置を往復できる", func(t *testing.T) {
		id := uuid.New()
		pos := shared.AppointmentPosition{Date: monday, Start: 9*3600 + 30*60, ID: id}

		got, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(pos))

		require.NoError(t, err)
		assert.Equal(t, "2026-10-19", got.Date.Format("2006-01-02"))
		assert.Equal(t, "09:30:00", got.Start.String())
		assert.Equal(t, id, got.ID)
	})

	t.Run("異常系: 空のカーソル", func(t *testing.T) {
		_, err := queries.DecodeAfterCursor("")
		assert.Error(t, err)
	})

	t.Run("異常系: 未対応のバージョン", func(t *testing.T) {
		_, err := queries.DecodeAfterCursor("djI6MjAyNi0xMC0xOV8wOTowMDowMF94")
		assert.Error(t, err)
	})

	t.Run("正常系: 上限の補正", func(t *testing.T) {
		assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
		assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
		assert.Equal(t, 5, queries.ValidateLimit(5))
	})
}
