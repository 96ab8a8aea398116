//go:build e2e

package booking_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/handler/dto/request"
	resdto "salon-booking/internal/handler/dto/response"
	"salon-booking/internal/usecase/queries"
	"salon-booking/tests/common/authtest"
	"salon-booking/tests/common/dbtest"
	"salon-booking/tests/common/httptest"
	"salon-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	appointmentsURL = "/api/appointments"
	slotsURL        = "/api/availability/%s/slots?serviceId=%s&date=%s"
	confirmURL      = "/api/payments/%s/confirm"

	// 2026-10-26 is a Monday
	bookingDate = "2026-10-26"
	monday      = 1
)

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type salon struct {
	staffID   uuid.UUID
	serviceID uuid.UUID
}

// seedSalon creates one staff member offering a 60 minute service on Mondays.
func (s *BookingSuite) seedSalon(start, end string) salon {
	t := s.T()
	staffID := dbtest.CreateTestUser(t, s.DB, "Asha", "asha@example.com", string(user.RoleStaff))
	serviceID := dbtest.CreateTestService(t, s.DB, "Haircut", 60, 50000)
	dbtest.AssignTestService(t, s.DB, staffID, serviceID, nil)
	dbtest.CreateTestWindow(t, s.DB, staffID, monday, start, end)
	return salon{staffID: staffID, serviceID: serviceID}
}

func (s *BookingSuite) customerToken(name string) (uuid.UUID, string) {
	id := dbtest.CreateTestUser(s.T(), s.DB, name, name+"@example.com", string(user.RoleCustomer))
	return id, s.jwt.GenerateToken(s.T(), id, user.RoleCustomer)
}

func (s *BookingSuite) createRequest(sl salon, start string) request.CreateAppointmentRequest {
	return request.CreateAppointmentRequest{
		StaffID:   sl.staffID,
		ServiceID: sl.serviceID,
		Date:      bookingDate,
		StartTime: start,
	}
}

type bookingBody struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	PaymentID     uuid.UUID `json:"paymentId"`
	OrderID       string    `json:"orderId"`
}

// =============================================================================
// TestAvailableSlots
// =============================================================================

func (s *BookingSuite) TestAvailableSlots() {
	s.Run("Normal case: booked slot moves from slots to bookedSlots", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		customerID, token := s.customerToken("ravi")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "10:00"), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(slotsURL, sl.staffID, sl.serviceID, bookingDate), nil, "")
		var view queries.AvailableSlotsView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)

		require.Equal(t, []queries.SlotView{
			{StartTime: "09:00:00", EndTime: "10:00:00"},
			{StartTime: "11:00:00", EndTime: "12:00:00"},
		}, view.Slots)
		require.Len(t, view.BookedSlots, 1)
		require.Equal(t, "10:00:00", view.BookedSlots[0].StartTime)
		require.Equal(t, &customerID, view.BookedSlots[0].CustomerID)
		require.Equal(t, "ravi", view.BookedSlots[0].CustomerName)
	})

	s.Run("Normal case: day without a window returns empty slots", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(slotsURL, sl.staffID, sl.serviceID, "2026-10-27"), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"date":"2026-10-27","slots":[],"bookedSlots":[]}`, w.Body.String())
	})
}

// =============================================================================
// TestConcurrentBooking
// =============================================================================

func (s *BookingSuite) TestConcurrentBooking() {
	s.Run("Normal case: exactly one of many racing customers gets the slot", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")

		const racers = 10
		tokens := make([]string, racers)
		for i := range racers {
			_, tokens[i] = s.customerToken(fmt.Sprintf("racer%d", i))
		}

		codes := make([]int, racers)
		var wg sync.WaitGroup
		for i := range racers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "09:00"), tokens[i])
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(t, 1, created, "codes: %v", codes)
		require.Equal(t, racers-1, conflicts, "codes: %v", codes)
		require.Equal(t, 1, dbtest.CountAppointments(t, s.DB, sl.staffID, bookingDate))
	})

	s.Run("Normal case: racing partial overlaps leave no overlapping rows", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		starts := []string{"09:00", "09:30", "10:00", "10:15", "10:30", "11:00"}

		var wg sync.WaitGroup
		for i, start := range starts {
			_, token := s.customerToken(fmt.Sprintf("partial%d", i))
			wg.Add(1)
			go func() {
				defer wg.Done()
				httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, start), token)
			}()
		}
		wg.Wait()

		var overlaps int
		err := s.DB.QueryRow(context.Background(), `
			SELECT count(*) FROM appointments a JOIN appointments b
			  ON a.staff_id = b.staff_id AND a.appointment_date = b.appointment_date AND a.id < b.id
			WHERE a.status <> 'cancelled' AND b.status <> 'cancelled'
			  AND a.start_time < b.end_time AND b.start_time < a.end_time`).Scan(&overlaps)
		require.NoError(t, err)
		require.Zero(t, overlaps)
		require.GreaterOrEqual(t, dbtest.CountAppointments(t, s.DB, sl.staffID, bookingDate), 2)
	})

	s.Run("Exception case: exclusion constraint rejects a direct overlapping insert", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		customerID, _ := s.customerToken("direct")
		insert := `INSERT INTO appointments (id, staff_id, customer_id, service_id, appointment_date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5::date, $6::time, $7::time)`

		_, err := s.DB.Exec(context.Background(), insert, uuid.New(), sl.staffID, customerID, sl.serviceID, bookingDate, "09:00", "10:00")
		require.NoError(t, err)
		_, err = s.DB.Exec(context.Background(), insert, uuid.New(), sl.staffID, customerID, sl.serviceID, bookingDate, "09:30", "10:30")

		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr), "expected a postgres error, got %v", err)
		require.Equal(t, "23P01", pgErr.Code)
	})
}

// =============================================================================
// TestPaymentFlow
// =============================================================================

func (s *BookingSuite) TestPaymentFlow() {
	s.Run("Normal case: confirm captures once and replays", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		_, token := s.customerToken("payer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "09:00"), token)
		var booked bookingBody
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &booked)

		secret := []byte(s.Config.Payment.SigningSecret)
		confirm := request.ConfirmPaymentRequest{
			OrderID:           booked.OrderID,
			ExternalPaymentID: "pay_e2e_001",
			Signature:         payment.Sign(booked.OrderID, "pay_e2e_001", secret),
		}
		url := fmt.Sprintf(confirmURL, booked.PaymentID)

		for range 2 {
			w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, confirm, token)
			var body map[string]map[string]any
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
			require.Equal(t, "confirmed", body["appointment"]["status"])
			require.Equal(t, "paid", body["appointment"]["paymentStatus"])
			require.Equal(t, "captured", body["payment"]["status"])
		}

		var status string
		err := s.DB.QueryRow(context.Background(), "SELECT status FROM payments WHERE id = $1", booked.PaymentID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "captured", status)
	})

	s.Run("Exception case: tampered signature leaves payment untouched", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		_, token := s.customerToken("tamper")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "09:00"), token)
		var booked bookingBody
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &booked)

		confirm := request.ConfirmPaymentRequest{
			OrderID:           booked.OrderID,
			ExternalPaymentID: "pay_e2e_002",
			Signature:         payment.Sign(booked.OrderID, "pay_e2e_002", []byte("wrong-secret")),
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, booked.PaymentID), confirm, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		var status string
		err := s.DB.QueryRow(context.Background(), "SELECT status FROM payments WHERE id = $1", booked.PaymentID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "created", status)
	})
}

// =============================================================================
// TestCancelAndRebook
// =============================================================================

func (s *BookingSuite) TestCancelAndRebook() {
	s.Run("Normal case: cancelled slot can be booked again", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		_, first := s.customerToken("first")
		_, second := s.customerToken("second")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "09:00"), first)
		var booked bookingBody
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &booked)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "09:00"), second)
		require.Equal(t, http.StatusConflict, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, appointmentsURL+"/"+booked.AppointmentID.String(), nil, first)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, "09:00"), second)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestListAppointments
// =============================================================================

func (s *BookingSuite) TestListAppointments() {
	s.Run("Normal case: customer pages through own appointments newest first", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		_, ravi := s.customerToken("ravi")
		_, meena := s.customerToken("meena")

		for _, req := range []struct {
			token, start string
		}{{ravi, "09:00"}, {meena, "10:00"}, {ravi, "11:00"}} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, req.start), req.token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		var page resdto.AppointmentListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL+"?limit=1", nil, ravi)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Appointments, 1)
		require.Equal(t, "11:00:00", page.Appointments[0].StartTime)
		require.NotNil(t, page.Appointments[0].Payment)
		require.NotEmpty(t, page.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL+"?limit=1&after="+page.NextCursor, nil, ravi)
		page = resdto.AppointmentListResponse{}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Appointments, 1)
		require.Equal(t, "09:00:00", page.Appointments[0].StartTime)
		require.Empty(t, page.NextCursor)
	})

	s.Run("Normal case: admin sees every customer", func() {
		t := s.T()
		sl := s.seedSalon("09:00", "12:00")
		_, ravi := s.customerToken("ravi")
		_, meena := s.customerToken("meena")
		for _, req := range []struct {
			token, start string
		}{{ravi, "09:00"}, {meena, "10:00"}} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createRequest(sl, req.start), req.token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}
		adminID := dbtest.CreateTestUser(t, s.DB, "Root", "root@example.com", string(user.RoleAdmin))

		var page resdto.AppointmentListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil, s.jwt.GenerateToken(t, adminID, user.RoleAdmin))
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Appointments, 2)
		require.Equal(t, "10:00:00", page.Appointments[0].StartTime)
	})

	s.Run("Exception case: malformed cursor is rejected", func() {
		_, token := s.customerToken("ravi")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, appointmentsURL+"?after=%21%21", nil, token)
		require.Equal(s.T(), http.StatusBadRequest, w.Code, w.Body.String())
	})
}
