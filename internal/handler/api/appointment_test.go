//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/handler/api"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"
	"salon-booking/tests/common/builder"
	"salon-booking/tests/common/httptest"
	"salon-booking/tests/common/testutil"
	commandsmock "salon-booking/tests/mock/commands"
	queriesmock "salon-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockAppointmentQueries
	handler      *api.AppointmentHandler
	principal    user.Principal
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.handler = api.NewAppointmentHandler(s.mockCommands, s.mockQueries)
	s.principal = user.Principal{ID: uuid.New(), Role: user.RoleCustomer}

	auth := fakeAuth(&s.principal)
	s.router.POST("/appointments", auth, s.handler.Create)
	s.router.GET("/appointments", auth, s.handler.List)
	s.router.GET("/appointments/:id", auth, s.handler.Get)
	s.router.PUT("/appointments/:id", auth, s.handler.Reschedule)
	s.router.DELETE("/appointments/:id", auth, s.handler.Cancel)
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

type testCaseAppointment struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestCreate() {
	url := "/appointments"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	result := b.BuildResult()

	s.Run("success: returns 201 Created with Location header", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Equal(s.principal, in.Customer)
				s.Equal(b.StaffID, in.StaffID)
				s.Equal("09:00:00", in.StartTime.String())
				s.Nil(in.IdempotencyKey)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.Appointment.ID().String(), body["appointmentId"])
		s.Equal(result.Payment.ID().String(), body["paymentId"])
		s.Equal(result.Payment.OrderID(), body["orderId"])
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Location": "/api/appointments/" + result.Appointment.ID().String(),
		})
	})

	s.Run("success: replayed idempotent request returns 200", func() {
		key := uuid.New()
		replayed := *result
		replayed.IsReplayed = true
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Require().NotNil(in.IdempotencyKey)
				s.Equal(key, *in.IdempotencyKey)
				return &replayed, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": key.String()}, "bearer-token")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "not-a-uuid"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid idempotency key format")
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAppointment{
			{name: "missing field: staffId", mutate: testutil.Field("staffId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: serviceId", mutate: testutil.Field("serviceId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: startTime", mutate: testutil.Field("startTime", nil), expectCode: http.StatusBadRequest},
			{name: "malformed staffId", mutate: testutil.Field("staffId", "abc"), expectCode: http.StatusBadRequest},
			{name: "date not YYYY-MM-DD", mutate: testutil.Field("date", "19/10/2026"), expectCode: http.StatusBadRequest},
			{name: "startTime out of range", mutate: testutil.Field("startTime", "25:61"), expectCode: http.StatusBadRequest},
			{name: "startTime with seconds OK", mutate: testutil.Field("startTime", "09:00:00"), expectCode: http.StatusCreated},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "bearer-token")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: usecase errors map to status codes", func() {
		cases := []errorCase{
			{name: "slot taken", err: commands.ErrSlotConflict, expectCode: http.StatusConflict, expectMsg: "no longer free"},
			{name: "outside availability", err: commands.ErrOutsideAvailability, expectCode: http.StatusConflict, expectMsg: "outside staff availability"},
			{name: "idempotency key reused", err: commands.ErrIdempotencyKeyReused, expectCode: http.StatusConflict},
			{name: "staff not found", err: shared.ErrStaffNotFound, expectCode: http.StatusNotFound, expectMsg: "staff member not found"},
			{name: "service not offered", err: commands.ErrServiceInactive, expectCode: http.StatusForbidden},
			{name: "ledger unavailable", err: errDBDown, expectCode: http.StatusServiceUnavailable, expectMsg: "Temporarily unavailable"},
			{name: "unexpected failure", err: errors.New("pq: syntax error"), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
				s.NotContains(rec.Body.String(), "pq:")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().BuildView()
	url := "/appointments/" + view.ID.String()

	s.Run("success: returns appointment with payment", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.principal).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body struct {
			Appointment struct {
				ID      string `json:"id"`
				Status  string `json:"status"`
				Payment struct {
					OrderID   string  `json:"orderId"`
					Signature *string `json:"signature"`
				} `json:"payment"`
			} `json:"appointment"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body.Appointment.ID)
		s.Equal("pending", body.Appointment.Status)
		s.Equal(view.Payment.OrderID, body.Appointment.Payment.OrderID)
		s.Nil(body.Appointment.Payment.Signature)
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/xyz", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, gomock.Any()).Return(nil, shared.ErrAppointmentNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "appointment not found")
	})

	s.Run("error: 403 Forbidden for another customer", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, gomock.Any()).Return(nil, shared.ErrNotAllowed).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestList() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns page with next cursor", func() {
		next := &queries.Cursor{After: "djE6bmV4dA=="}
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.principal, (*queries.Cursor)(nil), 1).
			Return([]*queries.AppointmentView{view}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?limit=1", nil, "bearer-token")

		var body struct {
			Appointments []struct {
				ID string `json:"id"`
			} `json:"appointments"`
			NextCursor string `json:"nextCursor"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Appointments, 1)
		s.Equal(view.ID.String(), body.Appointments[0].ID)
		s.Equal(next.After, body.NextCursor)
	})

	s.Run("success: passes cursor and default limit through", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.principal, &queries.Cursor{After: "abc"}, queries.DefaultListLimit).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?after=abc", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]any{}, body["appointments"])
		s.NotContains(body, "nextCursor")
	})

	s.Run("success: limit above maximum is clamped", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.principal, gomock.Nil(), queries.MaxListLimit).
			Return([]*queries.AppointmentView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?limit=5000", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request on non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?limit=ten", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})

	s.Run("error: 400 Bad Request on invalid cursor", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.principal, gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?after=bogus", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestReschedule
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestReschedule() {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.StartTime, b.EndTime = "11:00", "12:00"
	})
	moved := b.BuildAppointment()
	url := "/appointments/" + moved.ID().String()

	s.Run("success: returns moved appointment", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.RescheduleInput) (*appointment.Appointment, error) {
				s.Equal(moved.ID(), in.AppointmentID)
				s.Require().NotNil(in.NewStartTime)
				s.Equal("11:00:00", in.NewStartTime.String())
				s.Require().NotNil(in.NewDate)
				return moved, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRescheduleRequestDTO(), "bearer-token")

		var body map[string]map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("11:00:00", body["appointment"]["startTime"])
	})

	s.Run("success: empty body keeps date and time", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.RescheduleInput) (*appointment.Appointment, error) {
				s.Nil(in.NewDate)
				s.Nil(in.NewStartTime)
				return moved, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"date": "tomorrow"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: usecase errors map to status codes", func() {
		cases := []errorCase{
			{name: "slot taken", err: commands.ErrSlotConflict, expectCode: http.StatusConflict},
			{name: "cancelled appointment", err: commands.ErrNotReschedulable, expectCode: http.StatusConflict},
			{name: "not the owner", err: shared.ErrNotAllowed, expectCode: http.StatusForbidden},
			{name: "unknown appointment", err: shared.ErrAppointmentNotFound, expectCode: http.StatusNotFound},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRescheduleRequestDTO(), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestCancel() {
	cancelled := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Status = appointment.StatusCancelled
	}).BuildAppointment()
	url := "/appointments/" + cancelled.ID().String()

	s.Run("success: returns cancelled appointment", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), cancelled.ID(), s.principal).Return(cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		var body map[string]map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body["appointment"]["status"])
	})

	s.Run("error: 403 Forbidden for other actors", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), cancelled.ID(), gomock.Any()).Return(nil, shared.ErrNotAllowed).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
