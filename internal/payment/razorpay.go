package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cricket-registration-backend/internal/config"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"
)

// RazorpayClient opens orders through the Razorpay Orders REST API
type RazorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewRazorpayClient creates a client from the payment configuration
func NewRazorpayClient(cfg *config.Config) *RazorpayClient {
	return &RazorpayClient{
		baseURL:    strings.TrimRight(cfg.PaymentBaseURL, "/"),
		keyID:      cfg.PaymentKeyID,
		keySecret:  cfg.PaymentKeySecret,
		httpClient: &http.Client{Timeout: cfg.PaymentTimeout},
	}
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder posts to /v1/orders with basic auth
func (c *RazorpayClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if c.keySecret == "" {
		return nil, apperrors.ErrPaymentSecretMissing
	}

	payload, err := json.Marshal(razorpayOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logger.WithContext(ctx).WithField("receipt", req.Receipt).Info("Creating Razorpay order")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPaymentProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr razorpayErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return nil, fmt.Errorf("%w: status %d %s %s", apperrors.ErrPaymentProviderFailure,
			resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: response without order id", apperrors.ErrPaymentProviderFailure)
	}
	return &order, nil
}

func (c *RazorpayClient) KeyID() string {
	return c.keyID
}
