package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trustaudithq/backend/internal/mailer"
	"github.com/trustaudithq/backend/internal/model"
)

func finalizedSubmission() *model.ContactSubmission {
	return &model.ContactSubmission{
		ID:          "store-id-7",
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "0400 000 000",
		Company:     "Doe & Co",
		Message:     "Need an audit",
		SubmittedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestDispatch_SendsOperatorNoticeAndAutoReply(t *testing.T) {
	mail := &mockMailClient{}
	d := NewNotificationDispatcher(mail, "TrustAudit <noreply@trustaudithq.com>", "enquiries@trustaudithq.com")

	d.Dispatch(finalizedSubmission())
	d.Wait()

	msgs := mail.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	var operator, reply *mailer.Message
	for i := range msgs {
		switch msgs[i].To {
		case "enquiries@trustaudithq.com":
			operator = &msgs[i]
		case "jane@example.com":
			reply = &msgs[i]
		}
	}
	if operator == nil {
		t.Fatal("missing operator notification")
	}
	if reply == nil {
		t.Fatal("missing auto-reply")
	}

	if !strings.Contains(operator.Subject, "Jane Doe") {
		t.Errorf("operator subject should name the submitter, got %q", operator.Subject)
	}
	if operator.ReplyTo != "jane@example.com" {
		t.Errorf("operator notice should reply-to the submitter, got %q", operator.ReplyTo)
	}
	for _, want := range []string{"Need an audit", "0400 000 000", "Doe & Co", "store-id-7"} {
		if !strings.Contains(operator.Text, want) {
			t.Errorf("operator body missing %q:\n%s", want, operator.Text)
		}
	}

	if !strings.Contains(reply.Text, "Jane Doe") || !strings.Contains(reply.Text, "store-id-7") {
		t.Errorf("auto-reply should greet the submitter and carry the reference:\n%s", reply.Text)
	}
}

// TestDispatch_FallbackNoteInOperatorNotice verifies the operator is told
// when the enquiry exists only in email and logs.
func TestDispatch_FallbackNoteInOperatorNotice(t *testing.T) {
	mail := &mockMailClient{}
	d := NewNotificationDispatcher(mail, "noreply@trustaudithq.com", "enquiries@trustaudithq.com")

	sub := finalizedSubmission()
	sub.ID = "fallback_1756600000000_ab12cd34ef56"
	sub.Fallback = true
	d.Dispatch(sub)
	d.Wait()

	var operatorText string
	for _, m := range mail.messages() {
		if m.To == "enquiries@trustaudithq.com" {
			operatorText = m.Text
		}
	}
	if !strings.Contains(operatorText, "unreachable") {
		t.Errorf("expected fallback note in operator body:\n%s", operatorText)
	}
}

// TestDispatch_FailuresAreIndependent verifies one failing send does not
// suppress the other attempt, and neither failure escapes the dispatcher.
func TestDispatch_FailuresAreIndependent(t *testing.T) {
	mail := &failFirstMailClient{}
	d := NewNotificationDispatcher(mail, "noreply@trustaudithq.com", "enquiries@trustaudithq.com")

	d.Dispatch(finalizedSubmission())
	d.Wait()

	if mail.calls() != 2 {
		t.Errorf("expected both sends attempted, got %d", mail.calls())
	}
}

// failFirstMailClient fails the first send and accepts the rest.
type failFirstMailClient struct {
	mu sync.Mutex
	n  int
}

func (m *failFirstMailClient) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	if m.n == 1 {
		return errors.New("first send rejected")
	}
	return nil
}

func (m *failFirstMailClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}

// TestDispatch_ReturnsBeforeSendsComplete verifies Dispatch never blocks on
// delivery.
func TestDispatch_ReturnsBeforeSendsComplete(t *testing.T) {
	release := make(chan struct{})
	mail := &blockingMailClient{release: release}
	d := NewNotificationDispatcher(mail, "noreply@trustaudithq.com", "enquiries@trustaudithq.com")

	done := make(chan struct{})
	go func() {
		d.Dispatch(finalizedSubmission())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on mail delivery")
	}
	close(release)
	d.Wait()
}

// blockingMailClient holds every send until release is closed.
type blockingMailClient struct {
	release chan struct{}
}

func (m *blockingMailClient) Send(ctx context.Context, msg mailer.Message) error {
	<-m.release
	return nil
}
