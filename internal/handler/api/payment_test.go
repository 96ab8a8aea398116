//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/handler/api"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/shared"
	"salon-booking/tests/common/builder"
	"salon-booking/tests/common/httptest"
	"salon-booking/tests/common/testutil"
	commandsmock "salon-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const gatewaySecret = "test-signing-secret"

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)

	s.router.POST("/payments/:id/confirm", s.handler.Confirm)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestConfirm() {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Status = appointment.StatusConfirmed
	})
	result := b.BuildResult()
	_, err := result.Payment.Capture("pay_001", "sig", time.Now().UTC())
	s.Require().NoError(err)

	paymentID := result.Payment.ID()
	url := "/payments/" + paymentID.String() + "/confirm"
	reqBody := b.BuildConfirmRequestDTO("pay_001", gatewaySecret)

	s.Run("success: returns confirmed appointment and captured payment", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), commands.ConfirmPaymentInput{
			PaymentID:         paymentID,
			OrderID:           reqBody.OrderID,
			ExternalPaymentID: "pay_001",
			Signature:         reqBody.Signature,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body["appointment"]["status"])
		s.Equal("paid", body["appointment"]["paymentStatus"])
		s.Equal("captured", body["payment"]["status"])
		s.NotContains(rec.Body.String(), reqBody.Signature)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAppointment{
			{name: "missing field: orderId", mutate: testutil.Field("orderId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: externalPaymentId", mutate: testutil.Field("externalPaymentId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: signature", mutate: testutil.Field("signature", nil), expectCode: http.StatusBadRequest},
			{name: "signature not hex", mutate: testutil.Field("signature", "not-hex!"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 400 Bad Request on malformed payment id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/xyz/confirm", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: usecase errors map to status codes", func() {
		cases := []errorCase{
			{name: "signature mismatch", err: commands.ErrSignatureMismatch, expectCode: http.StatusBadRequest, expectMsg: "payment signature mismatch"},
			{name: "unknown payment", err: shared.ErrPaymentNotFound, expectCode: http.StatusNotFound, expectMsg: "payment not found"},
			{name: "payment failed earlier", err: commands.ErrPaymentNotCapturable, expectCode: http.StatusConflict},
			{name: "ledger unavailable", err: errDBDown, expectCode: http.StatusServiceUnavailable},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})

	s.Run("error: unknown id is passed through", func() {
		other := uuid.New()
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.ConfirmPaymentInput) (*commands.BookingResult, error) {
				s.Equal(other, in.PaymentID)
				return nil, shared.ErrPaymentNotFound
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/"+other.String()+"/confirm", reqBody, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
