package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trustaudithq/backend/internal/model"
	"github.com/trustaudithq/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.SubmissionRepository
	notifier *NotificationDispatcher
}

// NewContactService creates a ContactService backed by the given repository
// and dispatching notifications through the given dispatcher.
func NewContactService(repo repository.SubmissionRepository, notifier *NotificationDispatcher) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier}
}

// Submit assigns the receipt timestamp, attempts durable persistence, and
// falls back to a locally synthesized id when the store is unavailable.
// Misconfiguration errors propagate; everything else resolves to success.
// Notifications are initiated after persistence is resolved and before
// Submit returns, but never awaited.
func (s *contactServiceImpl) Submit(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error) {
	sub.SubmittedAt = time.Now().UTC()

	id, err := s.repo.Create(ctx, sub)
	switch {
	case err == nil:
		sub.ID = id
	default:
		var mc *repository.MisconfiguredError
		if errors.As(err, &mc) {
			return nil, err
		}
		s.recordFallback(sub, err)
	}

	s.notifier.Dispatch(sub)
	return sub, nil
}

// recordFallback accepts the submission despite the store being unreachable:
// it synthesizes a local id, marks the submission, and logs enough context
// for operators to recover the enquiry. Never the message body, to bound
// log volume. This path must not fail.
func (s *contactServiceImpl) recordFallback(sub *model.ContactSubmission, cause error) {
	sub.ID = fallbackID()
	sub.Fallback = true
	slog.Warn("submission accepted via fallback path",
		"id", sub.ID,
		"name", sub.Name,
		"email", sub.Email,
		"company", sub.Company,
		"submitted_at", sub.SubmittedAt,
		"cause", cause,
	)
}

// fallbackID synthesizes an identifier of the shape
// fallback_<epoch-millis>_<12 lowercase hex chars>.
func fallbackID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("fallback_%d_%s", time.Now().UnixMilli(), suffix)
}
