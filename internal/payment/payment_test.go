package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeys = Keys{KeyID: "rzp_test_key", KeySecret: "rzp_test_secret"}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeOrders struct {
	resp map[string]interface{}
	err  error
	got  map[string]interface{}
}

func (f *fakeOrders) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	f.got = data
	return f.resp, f.err
}

func newTestClient(orders OrderCreator) *Client {
	log := zerolog.Nop()
	return NewClient(testKeys, orders, &log)
}

func TestCreateOrder(t *testing.T) {
	orders := &fakeOrders{resp: map[string]interface{}{
		"id":       "order_ABC123",
		"amount":   float64(1200000),
		"currency": "INR",
	}}
	c := newTestClient(orders)

	order, err := c.CreateOrder(context.Background(), 1200000, "INR", "reg-1")
	require.NoError(t, err)
	assert.Equal(t, "order_ABC123", order.OrderID)
	assert.Equal(t, int64(1200000), order.Amount)
	assert.Equal(t, "INR", order.Currency)

	assert.Equal(t, int64(1200000), orders.got["amount"])
	assert.Equal(t, 1, orders.got["payment_capture"])
	notes, ok := orders.got["notes"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "reg-1", notes["registration_id"])
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	c := newTestClient(&fakeOrders{err: errors.New("BAD_REQUEST: amount too low")})

	_, err := c.CreateOrder(context.Background(), 100, "INR", "reg-1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrderMissingOrderID(t *testing.T) {
	c := newTestClient(&fakeOrders{resp: map[string]interface{}{"amount": float64(100)}})

	_, err := c.CreateOrder(context.Background(), 100, "INR", "reg-1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrderNotConfigured(t *testing.T) {
	log := zerolog.Nop()
	c := NewClient(Keys{}, nil, &log)

	_, err := c.CreateOrder(context.Background(), 100, "INR", "reg-1")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
}

func TestVerifySignature(t *testing.T) {
	c := newTestClient(nil)
	sig := sign(testKeys.KeySecret, "order_ABC123", "pay_XYZ789")

	assert.NoError(t, c.VerifySignature("order_ABC123", "pay_XYZ789", sig))
}

func TestVerifySignatureMismatch(t *testing.T) {
	c := newTestClient(nil)
	sig := sign(testKeys.KeySecret, "order_ABC123", "pay_XYZ789")

	// flip one character
	altered := []byte(sig)
	if altered[0] == 'a' {
		altered[0] = 'b'
	} else {
		altered[0] = 'a'
	}

	assert.ErrorIs(t, c.VerifySignature("order_ABC123", "pay_XYZ789", string(altered)), ErrSignatureMismatch)
	assert.ErrorIs(t, c.VerifySignature("order_ABC123", "pay_other", sig), ErrSignatureMismatch)
	assert.ErrorIs(t, c.VerifySignature("order_ABC123", "pay_XYZ789", ""), ErrSignatureMismatch)
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	c := newTestClient(nil)
	sig := sign("another_secret", "order_ABC123", "pay_XYZ789")

	assert.ErrorIs(t, c.VerifySignature("order_ABC123", "pay_XYZ789", sig), ErrSignatureMismatch)
}

func TestVerifySignatureNotConfigured(t *testing.T) {
	log := zerolog.Nop()
	c := NewClient(Keys{KeyID: "rzp_test_key"}, nil, &log)

	assert.ErrorIs(t, c.VerifySignature("o", "p", "s"), ErrGatewayNotConfigured)
}
