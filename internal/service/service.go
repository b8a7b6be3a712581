package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"confreg/internal/dto"
	"confreg/internal/mailer"
	"confreg/internal/model"
	"confreg/internal/payment"
	"confreg/internal/pricing"
	"confreg/internal/repo"
	"confreg/pkg/validator"
)

type Service interface {
	Root(ctx *ginext.Context)
	Health(ctx *ginext.Context)
	GetPricing(ctx *ginext.Context)
	CreateRegistration(ctx *ginext.Context)
	GetRegistration(ctx *ginext.Context)
	ListRegistrations(ctx *ginext.Context)
	CreateOrder(ctx *ginext.Context)
	VerifyPayment(ctx *ginext.Context)
	SubmitContact(ctx *ginext.Context)
	ListContacts(ctx *ginext.Context)
}

// Notifier publishes messages for the email worker. Satisfied by
// rabbit.Client; a nil Notifier disables notifications.
type Notifier interface {
	Publish(message []byte, delaySeconds int) error
}

type service struct {
	repo            repo.Repository
	log             *zerolog.Logger
	rbt             Notifier
	gateway         *payment.Client
	mail            mailer.Config
	reminderMinutes int
}

func NewService(repo repo.Repository, logger *zerolog.Logger, rbt Notifier, gateway *payment.Client, mail mailer.Config, reminderMinutes int) Service {
	return &service{
		repo:            repo,
		log:             logger,
		rbt:             rbt,
		gateway:         gateway,
		mail:            mail,
		reminderMinutes: reminderMinutes,
	}
}

func (s *service) Root(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, map[string]string{
		"message": "Welcome to the Conference Registration API",
	})
}

func (s *service) Health(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

func (s *service) GetPricing(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, dto.PricingResponse{
		Registration:  pricing.CategoryFees,
		Accommodation: pricing.RoomRates,
		RazorpayKeyID: s.gateway.KeyID(),
	})
}

func (s *service) CreateRegistration(ctx *ginext.Context) {
	var req dto.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse create registration request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		s.log.Error().Msgf("validation failed: %v", verr)
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	reg := &model.Registration{
		ID:                    uuid.NewString(),
		FullName:              req.FullName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Category:              req.Category,
		Organization:          req.Organization,
		Designation:           req.Designation,
		Address:               req.Address,
		AccommodationRequired: req.AccommodationRequired,
		RoomType:              req.RoomType,
		CheckInDate:           req.CheckInDate,
		CheckOutDate:          req.CheckOutDate,
		Amount:                pricing.Amount(req.Category, req.AccommodationRequired, req.RoomType),
		PaymentStatus:         model.PaymentStatusPending,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.repo.CreateRegistration(ctx.Request.Context(), reg); err != nil {
		s.log.Error().Err(err).Msg("failed to create registration in DB")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Str("registration_id", reg.ID).
		Str("category", reg.Category).
		Int64("amount", reg.Amount).
		Msg("registration created successfully")

	s.publishNotification(dto.NotifyPaymentReminder, reg.ID, s.reminderMinutes*60)

	if err := mailer.Send(s.log, s.mail, mailer.KindRegistrationReceived, reg.Email, reg.FullName, reg.Amount); err != nil {
		s.log.Warn().Err(err).Msg("failed to send registration email")
	}

	dto.SuccessCreatedResponse(ctx, reg)
}

func (s *service) GetRegistration(ctx *ginext.Context) {
	id := ctx.Param("id")

	reg, err := s.repo.GetRegistrationByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrRegistrationNotFound) {
			dto.RegistrationNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Str("registration_id", id).Msg("failed to get registration")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, reg)
}

func (s *service) ListRegistrations(ctx *ginext.Context) {
	regs, err := s.repo.ListRegistrations(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list registrations")
		dto.InternalServerError(ctx)
		return
	}

	if regs == nil {
		regs = []model.Registration{}
	}
	dto.SuccessResponse(ctx, regs)
}

func (s *service) CreateOrder(ctx *ginext.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	order, err := s.gateway.CreateOrder(ctx.Request.Context(), req.Amount, req.Currency, req.RegistrationID)
	if err != nil {
		if errors.Is(err, payment.ErrGatewayNotConfigured) {
			dto.GatewayNotConfiguredError(ctx)
			return
		}
		dto.OrderCreationFailedError(ctx)
		return
	}

	// The order now exists at the gateway; recording it is a separate step.
	// A failure here leaves the registration without an order_id and the
	// caller retries by creating a fresh order.
	if err := s.repo.SetOrderID(ctx.Request.Context(), req.RegistrationID, order.OrderID); err != nil {
		s.log.Error().Err(err).
			Str("registration_id", req.RegistrationID).
			Str("order_id", order.OrderID).
			Msg("failed to record order id")
		dto.OrderCreationFailedError(ctx)
		return
	}

	s.log.Info().
		Str("registration_id", req.RegistrationID).
		Str("order_id", order.OrderID).
		Int64("amount", order.Amount).
		Msg("payment order created successfully")

	dto.SuccessResponse(ctx, dto.CreateOrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.gateway.KeyID(),
	})
}

func (s *service) VerifyPayment(ctx *ginext.Context) {
	var req dto.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		if errors.Is(err, payment.ErrGatewayNotConfigured) {
			dto.GatewayNotConfiguredError(ctx)
			return
		}
		s.log.Warn().
			Str("registration_id", req.RegistrationID).
			Str("order_id", req.RazorpayOrderID).
			Msg("payment signature mismatch")
		dto.PaymentSignatureError(ctx)
		return
	}

	// Signature is valid; a failure to record it must stay distinguishable
	// from a rejected signature.
	if err := s.repo.SetPaymentCompleted(ctx.Request.Context(), req.RegistrationID, req.RazorpayPaymentID); err != nil {
		s.log.Error().Err(err).
			Str("registration_id", req.RegistrationID).
			Msg("failed to record verified payment")
		dto.PaymentRecordingFailedError(ctx)
		return
	}

	s.log.Info().
		Str("registration_id", req.RegistrationID).
		Str("order_id", req.RazorpayOrderID).
		Str("payment_id", req.RazorpayPaymentID).
		Msg("payment verified successfully")

	s.publishNotification(dto.NotifyPaymentConfirmed, req.RegistrationID, 0)

	dto.SuccessResponse(ctx, dto.VerifyPaymentResponse{
		Status:  "success",
		Message: "Payment verified successfully",
	})
}

func (s *service) SubmitContact(ctx *ginext.Context) {
	var req dto.CreateContactMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateContactMessage(ctx.Request.Context(), msg); err != nil {
		s.log.Error().Err(err).Msg("failed to create contact message in DB")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessCreatedResponse(ctx, msg)
}

func (s *service) ListContacts(ctx *ginext.Context) {
	msgs, err := s.repo.ListContactMessages(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list contact messages")
		dto.InternalServerError(ctx)
		return
	}

	if msgs == nil {
		msgs = []model.ContactMessage{}
	}
	dto.SuccessResponse(ctx, msgs)
}

// publishNotification hands a message to the email worker. Failures are
// logged and never fail the HTTP request.
func (s *service) publishNotification(kind, registrationID string, delaySeconds int) {
	if s.rbt == nil {
		return
	}

	payload, err := json.Marshal(dto.NotificationMessage{
		Kind:           kind,
		RegistrationID: registrationID,
		PublishedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal notification message")
		return
	}

	if err := s.rbt.Publish(payload, delaySeconds); err != nil {
		s.log.Error().Err(err).
			Str("kind", kind).
			Str("registration_id", registrationID).
			Msg("failed to publish notification to RabbitMQ")
	}
}
