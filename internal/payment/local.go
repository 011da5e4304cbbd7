package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// LocalProvider issues order ids without contacting a gateway. Used in development and tests.
type LocalProvider struct {
	keyID string
	now   func() time.Time
}

// NewLocalProvider creates a local provider reporting keyID to clients
func NewLocalProvider(keyID string) *LocalProvider {
	return &LocalProvider{keyID: keyID, now: time.Now}
}

// CreateOrder returns an order id of the form order_<unix-ms><random>
func (p *LocalProvider) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	return &Order{
		ID:       fmt.Sprintf("order_%d%s", p.now().UnixMilli(), hex.EncodeToString(suffix)),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (p *LocalProvider) KeyID() string {
	return p.keyID
}
