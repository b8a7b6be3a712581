package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	RegistrationNotFound  = "REGISTRATION_NOT_FOUND"
	GatewayNotConfigured  = "GATEWAY_NOT_CONFIGURED"
	OrderCreationFailed   = "ORDER_CREATION_FAILED"
	PaymentSignatureBad   = "PAYMENT_SIGNATURE_INVALID"
	PaymentRecordingError = "PAYMENT_RECORDING_FAILED"
)

type CreateRegistrationRequest struct {
	FullName              string `json:"full_name" validate:"required,min=3,max=255"`
	Email                 string `json:"email" validate:"required,email"`
	Phone                 string `json:"phone" validate:"required"`
	Category              string `json:"category" validate:"required"`
	Organization          string `json:"organization"`
	Designation           string `json:"designation"`
	Address               string `json:"address"`
	AccommodationRequired bool   `json:"accommodation_required"`
	RoomType              string `json:"room_type"`
	CheckInDate           string `json:"check_in_date" validate:"omitempty,dateonly"`
	CheckOutDate          string `json:"check_out_date" validate:"omitempty,dateonly"`
}

type CreateOrderRequest struct {
	Amount         int64  `json:"amount" validate:"gt=0"`
	Currency       string `json:"currency" validate:"required"`
	RegistrationID string `json:"registration_id" validate:"required"`
}

type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	RegistrationID    string `json:"registration_id" validate:"required"`
}

type VerifyPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type PricingResponse struct {
	Registration  map[string]int64 `json:"registration"`
	Accommodation map[string]int64 `json:"accommodation"`
	RazorpayKeyID string           `json:"razorpay_key_id"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationMessage is the payload published to RabbitMQ for the email
// worker. Kind selects the template; reminder messages are published with a
// delay and re-checked against the stored payment status on delivery.
type NotificationMessage struct {
	Kind           string    `json:"kind"`
	RegistrationID string    `json:"registration_id"`
	PublishedAt    time.Time `json:"published_at"`
}

const (
	NotifyPaymentReminder  = "payment_reminder"
	NotifyPaymentConfirmed = "payment_confirmed"
)

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func GatewayNotConfiguredError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: GatewayNotConfigured,
			Desc: "Payment gateway not configured",
		},
	})
}

func OrderCreationFailedError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: OrderCreationFailed,
			Desc: "Failed to create payment order",
		},
	})
}

func PaymentSignatureError(c *ginext.Context) {
	BadResponseError(c, PaymentSignatureBad, "Invalid payment signature")
}

func PaymentRecordingFailedError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: PaymentRecordingError,
			Desc: "Payment verified but could not be recorded",
		},
	})
}

func RegistrationNotFoundError(c *ginext.Context) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: RegistrationNotFound,
			Desc: "Registration not found",
		},
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
