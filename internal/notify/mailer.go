package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
	"github.com/vasiliy-maslov/storefront/internal/config"
	"gopkg.in/gomail.v2"
)

const subject = "Order confirmation - Storefront"

// Mailer delivers order receipts over SMTP. It makes exactly one
// attempt per Send call; retrying is up to the caller.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send renders the receipt and mails it to the customer. The context
// bounds the whole attempt: gomail has no context support of its own,
// so the dial-and-send runs aside and loses the race against ctx.
func (m *Mailer) Send(ctx context.Context, order checkout.OrderRecord, recipient string) error {
	html, err := renderReceipt(order)
	if err != nil {
		return fmt.Errorf("notify: failed to render receipt: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("notify: send aborted: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("notify: failed to send mail: %w", err)
		}
	}

	log.Info().Stringer("order_id", order.ID).Str("recipient", recipient).Msg("notify: receipt sent")

	return nil
}
