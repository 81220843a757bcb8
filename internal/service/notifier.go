package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/trustaudithq/backend/internal/mailer"
	"github.com/trustaudithq/backend/internal/model"
)

const sendTimeout = 30 * time.Second

// NotificationDispatcher fires the two contact-form emails — operator
// notification and requester auto-reply — as independent background sends.
// Each send has its own error boundary: a failure is logged and goes no
// further. Callers never wait for delivery.
type NotificationDispatcher struct {
	mail          mailer.Client
	fromAddress   string
	operatorEmail string
	wg            sync.WaitGroup
}

// NewNotificationDispatcher creates a dispatcher sending from fromAddress,
// with operator notifications delivered to operatorEmail.
func NewNotificationDispatcher(mail mailer.Client, fromAddress, operatorEmail string) *NotificationDispatcher {
	return &NotificationDispatcher{
		mail:          mail,
		fromAddress:   fromAddress,
		operatorEmail: operatorEmail,
	}
}

// Dispatch initiates both sends for a finalized submission and returns
// immediately. Both goroutines are started before Dispatch returns, so
// callers may respond to the client knowing the attempts are in flight.
func (d *NotificationDispatcher) Dispatch(sub *model.ContactSubmission) {
	d.send("operator_notice", operatorMessage(d.fromAddress, d.operatorEmail, sub))
	d.send("auto_reply", autoReplyMessage(d.fromAddress, sub))
}

// Wait blocks until all in-flight sends have finished. Used by graceful
// shutdown and by tests; request handling never calls it.
func (d *NotificationDispatcher) Wait() {
	d.wg.Wait()
}

// send runs one delivery in the background. A detached context is used on
// purpose: a client disconnect must not abort an in-progress send.
func (d *NotificationDispatcher) send(kind string, msg mailer.Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := d.mail.Send(ctx, msg); err != nil {
			slog.Warn("notification send failed", "kind", kind, "to", msg.To, "error", err)
			return
		}
		slog.Debug("notification sent", "kind", kind, "to", msg.To)
	}()
}

// operatorMessage summarizes the submission for the internal recipient.
func operatorMessage(from, to string, sub *model.ContactSubmission) mailer.Message {
	body := fmt.Sprintf("New contact enquiry received.\n\nName: %s\nEmail: %s\n", sub.Name, sub.Email)
	if sub.Phone != "" {
		body += fmt.Sprintf("Phone: %s\n", sub.Phone)
	}
	if sub.Company != "" {
		body += fmt.Sprintf("Company: %s\n", sub.Company)
	}
	body += fmt.Sprintf("Submitted: %s\nReference: %s\n", sub.SubmittedAt.Format(time.RFC3339), sub.ID)
	if sub.Fallback {
		body += "NOTE: the submission store was unreachable; this enquiry exists only in email and logs.\n"
	}
	body += "\n" + sub.Message + "\n"

	return mailer.Message{
		From:    from,
		To:      to,
		ReplyTo: sub.Email,
		Subject: "New contact enquiry from " + sub.Name,
		Text:    body,
	}
}

// autoReplyMessage confirms receipt to the submitter.
func autoReplyMessage(from string, sub *model.ContactSubmission) mailer.Message {
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for getting in touch. We've received your enquiry and "+
			"one of our auditors will be in touch within one business day.\n\n"+
			"Your reference: %s\n\nTrustAudit\n",
		sub.Name, sub.ID)

	return mailer.Message{
		From:    from,
		To:      sub.Email,
		Subject: "We've received your enquiry",
		Text:    body,
	}
}
