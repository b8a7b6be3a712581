package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

const (
	KindRegistrationReceived = "registration_received"
	KindPaymentReminder      = "payment_reminder"
	KindPaymentConfirmed     = "payment_confirmed"
)

type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Send emails the attendee about their registration. Amounts arrive in paise
// and are rendered in rupees. A disabled config is a silent no-op so local
// setups without SMTP credentials keep working.
func Send(log *zerolog.Logger, cfg Config, kind, recipientEmail, fullName string, amount int64) error {
	if !cfg.Enabled() {
		log.Debug().Str("kind", kind).Msg("mailer disabled, skipping email")
		return nil
	}

	var subject, body string
	switch kind {
	case KindRegistrationReceived:
		subject = "Your conference registration has been received"
		body = fmt.Sprintf("Dear %s,\n\nThank you for registering. Your registration fee is INR %d.\nPlease complete the payment to confirm your place.", fullName, amount/100)
	case KindPaymentReminder:
		subject = "Payment reminder for your conference registration"
		body = fmt.Sprintf("Dear %s,\n\nYour registration is still awaiting payment of INR %d.\nPlease complete the payment to confirm your place.", fullName, amount/100)
	case KindPaymentConfirmed:
		subject = "Your conference registration is confirmed"
		body = fmt.Sprintf("Dear %s,\n\nWe have received your payment of INR %d. Your registration is confirmed.\nSee you at the conference!", fullName, amount/100)
	default:
		return fmt.Errorf("unknown email kind: %s", kind)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, recipientEmail, subject, body,
	)

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.From, []string{recipientEmail}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Msgf("email sent to %s (kind: %s)", recipientEmail, kind)
	return nil
}
