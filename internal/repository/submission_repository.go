package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustaudithq/backend/internal/docstore"
	"github.com/trustaudithq/backend/internal/model"
)

// SubmissionRepository defines the persistence interface for contact
// submissions. A single synchronous attempt per call; no retries.
type SubmissionRepository interface {
	// Create stores the submission and returns the store-assigned id.
	Create(ctx context.Context, sub *model.ContactSubmission) (string, error)
}

// DocstoreSubmissionRepository is the document-store implementation of
// SubmissionRepository.
type DocstoreSubmissionRepository struct {
	client     docstore.Client
	collection string
}

// NewDocstoreSubmissionRepository creates a repository writing to the given
// collection through the given client.
func NewDocstoreSubmissionRepository(client docstore.Client, collection string) *DocstoreSubmissionRepository {
	return &DocstoreSubmissionRepository{client: client, collection: collection}
}

// Ensure DocstoreSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*DocstoreSubmissionRepository)(nil)

// Create maps the submission to document fields and writes it. Store errors
// are reclassified into the repository taxonomy: a *MisconfiguredError for
// deployment defects, ErrStoreUnavailable for everything else (including an
// unconfigured client, which by contract fails fast).
func (r *DocstoreSubmissionRepository) Create(ctx context.Context, sub *model.ContactSubmission) (string, error) {
	doc := map[string]any{
		"name":        sub.Name,
		"email":       sub.Email,
		"message":     sub.Message,
		"submittedAt": sub.SubmittedAt,
	}
	if sub.Phone != "" {
		doc["phone"] = sub.Phone
	}
	if sub.Company != "" {
		doc["company"] = sub.Company
	}

	id, err := r.client.CreateDocument(ctx, r.collection, doc)
	if err != nil {
		var mc *docstore.MisconfiguredError
		if errors.As(err, &mc) {
			return "", &MisconfiguredError{Reason: mc.Reason}
		}
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return id, nil
}
