package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"confreg/internal/dto"
	"confreg/internal/mailer"
	"confreg/internal/model"
	"confreg/internal/rabbit"
	"confreg/internal/repo"
)

// sendEmail is swapped out in tests.
var sendEmail = mailer.Send

// Reader consumes notification messages and sends the matching attendee
// emails. Reminder messages arrive after a delay and are dropped when the
// payment already completed in the meantime.
type Reader struct {
	RMQ    *rabbit.Client
	repo   repo.Repository
	mail   mailer.Config
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repo repo.Repository, mail mailer.Config) *Reader {
	return &Reader{
		RMQ:  rmq,
		repo: repo,
		mail: mail,
		done: make(chan struct{}),
	}
}

// HandleMessage processes one notification payload. A returned error nacks
// and requeues the message; nil acks it, including the drop cases.
func (r *Reader) HandleMessage(ctx context.Context, body []byte) error {
	var msg dto.NotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		zlog.Logger.Error().
			Err(err).
			Msgf("failed to unmarshal notification: %s", string(body))
		return err
	}

	zlog.Logger.Info().
		Str("kind", msg.Kind).
		Str("registration_id", msg.RegistrationID).
		Msg("received notification message")

	reg, err := r.repo.GetRegistrationByID(ctx, msg.RegistrationID)
	if err != nil {
		zlog.Logger.Error().
			Err(err).
			Str("registration_id", msg.RegistrationID).
			Msg("failed to get registration for notification")
		return nil
	}

	var kind string
	switch msg.Kind {
	case dto.NotifyPaymentReminder:
		if reg.PaymentStatus != model.PaymentStatusPending {
			zlog.Logger.Info().
				Str("registration_id", reg.ID).
				Msg("payment already completed, skipping reminder")
			return nil
		}
		kind = mailer.KindPaymentReminder
	case dto.NotifyPaymentConfirmed:
		kind = mailer.KindPaymentConfirmed
	default:
		zlog.Logger.Warn().
			Str("kind", msg.Kind).
			Msg("unknown notification kind, dropping")
		return nil
	}

	if err := sendEmail(&zlog.Logger, r.mail, kind, reg.Email, reg.FullName, reg.Amount); err != nil {
		zlog.Logger.Warn().
			Err(err).
			Str("registration_id", reg.ID).
			Msg("failed to send notification email")
	}

	return nil
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification worker started")

	go func() {
		defer close(r.done)

		if err := r.RMQ.Consume(func(body []byte) error {
			return r.HandleMessage(cctx, body)
		}); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification worker stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
