// Package docstore provides a lightweight client for the Firestore-style
// document database that stores contact submissions. Uses raw HTTP calls
// (no SDK) to minimize external dependencies.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"
)

// ErrNotConfigured is returned when the store endpoint, project or API key
// is missing. Detected at construction, reported fast on every call.
var ErrNotConfigured = errors.New("docstore: not configured")

// ErrUnavailable tags any network-level or server-side failure that should
// be treated as ordinary unavailability (the caller may degrade gracefully).
var ErrUnavailable = errors.New("docstore: unavailable")

// MisconfiguredError reports that the store answered but rejected the
// deployment's configuration (bad credential, missing project/collection).
// This is a deployment defect, not transient unavailability.
type MisconfiguredError struct {
	Status int
	Reason string
}

func (e *MisconfiguredError) Error() string {
	return fmt.Sprintf("docstore: misconfigured (%d): %s", e.Status, e.Reason)
}

// Client is the document-store interface used by the repository layer.
type Client interface {
	// CreateDocument writes one document to the given collection and
	// returns the store-assigned document id.
	CreateDocument(ctx context.Context, collection string, doc map[string]any) (string, error)
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	endpoint   string
	projectID  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a RealClient. Any of the three parameters may be empty,
// in which case the client is constructed unconfigured and every call
// returns ErrNotConfigured without touching the network.
func NewClient(endpoint, projectID, apiKey string) *RealClient {
	return &RealClient{
		endpoint:   endpoint,
		projectID:  projectID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// Configured reports whether all connection parameters are present.
func (c *RealClient) Configured() bool {
	return c.endpoint != "" && c.projectID != "" && c.apiKey != ""
}

// createResponse is the subset of the store's document resource we need.
type createResponse struct {
	Name string `json:"name"`
}

// CreateDocument writes doc to the collection and returns the assigned id.
// Errors are classified: ErrNotConfigured, *MisconfiguredError for 401/403/404,
// ErrUnavailable for everything else.
func (c *RealClient) CreateDocument(ctx context.Context, collection string, doc map[string]any) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	fields, err := encodeFields(doc)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return "", fmt.Errorf("docstore: marshal document: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents/%s?key=%s",
		c.endpoint, c.projectID, collection, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("docstore: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return "", &MisconfiguredError{Status: resp.StatusCode, Reason: "API key rejected by document store"}
	case resp.StatusCode == http.StatusNotFound:
		return "", &MisconfiguredError{Status: resp.StatusCode, Reason: "project or collection not found"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	if created.Name == "" {
		return "", fmt.Errorf("%w: response missing document name", ErrUnavailable)
	}
	// The resource name is a full path; the document id is its last segment.
	return path.Base(created.Name), nil
}

// encodeFields converts a flat Go map into the store's typed value format.
// Only the types the submission model produces are supported.
func encodeFields(doc map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(doc))
	for key, value := range doc {
		switch v := value.(type) {
		case string:
			fields[key] = map[string]any{"stringValue": v}
		case bool:
			fields[key] = map[string]any{"booleanValue": v}
		case time.Time:
			fields[key] = map[string]any{"timestampValue": v.UTC().Format(time.RFC3339Nano)}
		default:
			return nil, fmt.Errorf("docstore: unsupported field type %T for %q", value, key)
		}
	}
	return fields, nil
}
