package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrGatewayUnavailable   = errors.New("failed to create payment order")
	ErrSignatureMismatch    = errors.New("invalid payment signature")
)

// Keys is the Razorpay credential pair. Both values come from the environment;
// an empty pair degrades order creation and verification to a configuration
// error instead of crashing the service.
type Keys struct {
	KeyID     string
	KeySecret string
}

func (k Keys) Configured() bool {
	return k.KeyID != "" && k.KeySecret != ""
}

// OrderCreator is the slice of the Razorpay SDK the client needs. The SDK's
// order resource satisfies it; tests supply a fake.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Client struct {
	keys   Keys
	orders OrderCreator
	log    *zerolog.Logger
}

func NewClient(keys Keys, orders OrderCreator, log *zerolog.Logger) *Client {
	return &Client{
		keys:   keys,
		orders: orders,
		log:    log,
	}
}

// NewRazorpayClient builds a Client backed by the real Razorpay SDK. When the
// keys are absent the client is still returned and every call fails with
// ErrGatewayNotConfigured.
func NewRazorpayClient(keys Keys, log *zerolog.Logger) *Client {
	var orders OrderCreator
	if keys.Configured() {
		orders = razorpay.NewClient(keys.KeyID, keys.KeySecret).Order
	}
	return NewClient(keys, orders, log)
}

func (c *Client) KeyID() string {
	return c.keys.KeyID
}

// CreateOrder asks the gateway for a payment order over the given amount in
// minor units. The registration id travels as gateway-side metadata so the
// order can be cross-referenced later. Single attempt, no retries; the
// gateway's error detail is logged but never returned to the caller.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, registrationID string) (*Order, error) {
	if !c.keys.Configured() || c.orders == nil {
		return nil, ErrGatewayNotConfigured
	}

	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"registration_id": registrationID,
		},
	}

	body, err := c.orders.Create(data, nil)
	if err != nil {
		c.log.Error().Err(err).
			Str("registration_id", registrationID).
			Int64("amount", amount).
			Msg("gateway order creation failed")
		return nil, ErrGatewayUnavailable
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		c.log.Error().
			Str("registration_id", registrationID).
			Msg("gateway response missing order id")
		return nil, ErrGatewayUnavailable
	}

	order := &Order{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
	}
	if v, ok := body["amount"].(float64); ok {
		order.Amount = int64(v)
	}
	if v, ok := body["currency"].(string); ok && v != "" {
		order.Currency = v
	}

	return order, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "orderID|paymentID" under the
// shared secret and compares it to the caller-supplied hex signature. The
// compare is constant-time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	if c.keys.KeySecret == "" {
		return ErrGatewayNotConfigured
	}

	mac := hmac.New(sha256.New, []byte(c.keys.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
