package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cricket-registration-backend/internal/api/handlers"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/mocks"
	"cricket-registration-backend/internal/service"
	"cricket-registration-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// PaymentHandlerTestSuite defines the test suite for PaymentHandler
type PaymentHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockPaymentServiceInterface
	handler     *handlers.PaymentHandler
	httpSuite   *testutils.HTTPTestSuite
	captainID   uuid.UUID
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockPaymentServiceInterface(suite.ctrl)
	suite.captainID = uuid.New()
	suite.handler = handlers.NewPaymentHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()
	payments := suite.httpSuite.Router.Group("/api/payment")
	payments.POST("/create-order", asUser(suite.captainID), suite.handler.CreateOrder)
	payments.POST("/verify", suite.handler.VerifyPayment)
	payments.POST("/failure", asUser(suite.captainID), suite.handler.ReportFailure)
}

func (suite *PaymentHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *PaymentHandlerTestSuite) TestCreateOrder() {
	registrationID := uuid.New()
	body := map[string]interface{}{
		"amount": 500000, "registrationId": registrationID.String(), "teamName": "Warriors", "category": "Open",
	}

	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().CreateOrder(gomock.Any(), suite.captainID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req *service.CreateOrderRequest) (*service.OrderResponse, error) {
				assert.Equal(t, int64(500000), req.Amount)
				assert.Equal(t, registrationID, req.RegistrationID)
				return &service.OrderResponse{OrderID: "order_1", Amount: 500000, Currency: "INR", KeyID: "rzp_test"}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/create-order", body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response struct {
			Success bool                  `json:"success"`
			Order   service.OrderResponse `json:"order"`
		}
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.True(t, response.Success)
		assert.Equal(t, "order_1", response.Order.OrderID)
	})

	suite.T().Run("Provider failure is a bad gateway", func(t *testing.T) {
		suite.mockService.EXPECT().CreateOrder(gomock.Any(), suite.captainID, gomock.Any()).
			Return(nil, fmt.Errorf("%w: timeout", apperrors.ErrPaymentProviderFailure))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/create-order", body)

		var response handlers.ErrorResponse
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Equal(t, handlers.CodeProviderError, response.Code)
		assert.NotContains(t, response.Error, "timeout")
	})

	suite.T().Run("Already paid", func(t *testing.T) {
		suite.mockService.EXPECT().CreateOrder(gomock.Any(), suite.captainID, gomock.Any()).
			Return(nil, apperrors.ErrPaymentAlreadyCompleted)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/create-order", body)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func (suite *PaymentHandlerTestSuite) TestVerifyPayment() {
	registrationID := uuid.New()
	body := map[string]interface{}{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "abc",
		"registrationId":      registrationID.String(),
	}

	suite.T().Run("Verified", func(t *testing.T) {
		paidAt := time.Now().UTC().Truncate(time.Microsecond)
		suite.mockService.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *service.VerifyPaymentRequest) (*service.VerificationResponse, error) {
				assert.Equal(t, "order_1", req.OrderID)
				assert.Equal(t, "pay_1", req.PaymentID)
				assert.Equal(t, "abc", req.Signature)
				return &service.VerificationResponse{
					Success:        true,
					RegistrationID: registrationID,
					PaymentID:      "pay_1",
					PaymentStatus:  models.PaymentStatusCompleted,
					PaidAt:         &paidAt,
				}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/verify", body)

		var response service.VerificationResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.True(t, response.Success)
		assert.Equal(t, models.PaymentStatusCompleted, response.PaymentStatus)
	})

	suite.T().Run("Bad signature", func(t *testing.T) {
		suite.mockService.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidSignature)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/verify", body)

		var response handlers.ErrorResponse
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, handlers.CodeInvalidSignature, response.Code)
	})

	suite.T().Run("Missing secret is an internal error", func(t *testing.T) {
		suite.mockService.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrPaymentSecretMissing)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/verify", body)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func (suite *PaymentHandlerTestSuite) TestReportFailure() {
	registrationID := uuid.New()
	body := map[string]interface{}{"registrationId": registrationID.String(), "orderId": "order_1", "reason": "card declined"}

	suite.T().Run("Recorded", func(t *testing.T) {
		suite.mockService.EXPECT().ReportFailure(gomock.Any(), suite.captainID, gomock.Any()).
			Return(&service.RegistrationResponse{
				ID:            registrationID,
				PaymentStatus: models.PaymentStatusFailed,
				FailureReason: "card declined",
			}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/failure", body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response struct {
			Registration service.RegistrationResponse `json:"registration"`
		}
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, models.PaymentStatusFailed, response.Registration.PaymentStatus)
	})

	suite.T().Run("Not pending", func(t *testing.T) {
		suite.mockService.EXPECT().ReportFailure(gomock.Any(), suite.captainID, gomock.Any()).
			Return(nil, fmt.Errorf("%w: completed", apperrors.ErrInvalidPaymentState))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/payment/failure", body)

		var response handlers.ErrorResponse
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, handlers.CodeInvalidState, response.Code)
	})
}

func TestPaymentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
