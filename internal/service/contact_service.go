package service

import (
	"context"

	"github.com/trustaudithq/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit finalizes and stores a new submission. The returned submission
	// always carries an ID: either store-assigned or, when the store is
	// unavailable, a locally synthesized fallback id with Fallback set.
	// A non-nil error means a store misconfiguration that must be surfaced.
	Submit(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error)
}
