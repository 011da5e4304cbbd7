package payment

import (
	"context"
	"fmt"

	"cricket-registration-backend/internal/config"
)

//go:generate mockgen -source=provider.go -destination=../mocks/payment_mocks.go -package=mocks

// OrderRequest describes an order to open with the payment provider
type OrderRequest struct {
	Amount   int64             // minor units (paise)
	Currency string            // ISO code, e.g. INR
	Receipt  string            // registration id
	Notes    map[string]string // free-form metadata shown in the provider dashboard
}

// Order is the provider's handle for an opened order
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Provider opens payment orders
type Provider interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	// KeyID is the public key the client checkout widget needs
	KeyID() string
}

// NewProvider builds the provider selected by PAYMENT_PROVIDER
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.PaymentProvider {
	case "", "local":
		return NewLocalProvider(cfg.PaymentKeyID), nil
	case "razorpay":
		return NewRazorpayClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.PaymentProvider)
	}
}
