package model

import (
	"regexp"
	"strings"
	"time"
)

// ContactSubmission represents one contact-form enquiry processed by the
// submission pipeline. It is fully assembled before any side effect and
// immutable afterwards.
type ContactSubmission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	// Fallback is true only when the durable store could not be reached
	// and the ID was synthesized locally.
	Fallback bool `json:"fallback,omitempty"`
}

// SubmitInput is the expected JSON body for POST /api/contact.
// name, email and message are required; the rest are optional.
type SubmitInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	AuditType     string `json:"auditType"`
	PracticeType  string `json:"practiceType"`
	TrustAccounts string `json:"trustAccounts"`
}

// ValidationError reports a client-caused input problem. Message is safe to
// return verbatim in the HTTP response body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Permissive on purpose: the form is an enquiry channel, not an identity
// system. local@domain.tld shape only.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize validates and normalizes the input into a ContactSubmission
// draft (no ID, no SubmittedAt). It is a pure function of the input: all
// fields are trimmed, email is lower-cased, and any structured optional
// fields are appended to the message as an "Additional Details" block.
func (in SubmitInput) Normalize() (*ContactSubmission, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	message := strings.TrimSpace(in.Message)

	switch {
	case name == "":
		return nil, &ValidationError{Field: "name", Message: "Name, email and message are required"}
	case email == "":
		return nil, &ValidationError{Field: "email", Message: "Name, email and message are required"}
	case message == "":
		return nil, &ValidationError{Field: "message", Message: "Name, email and message are required"}
	}

	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Field: "email", Message: "Invalid email format"}
	}

	if details := additionalDetails(in); details != "" {
		message += "\n\n--- Additional Details ---\n" + details
	}

	return &ContactSubmission{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Message: message,
	}, nil
}

// additionalDetails renders the structured optional fields as "Label: value"
// lines. Blank fields are omitted entirely so they never pollute the message.
// The order is fixed: practice type, trust accounts, preferred date,
// preferred time, audit type.
func additionalDetails(in SubmitInput) string {
	pairs := []struct {
		label, value string
	}{
		{"Practice Type", in.PracticeType},
		{"Trust Accounts", in.TrustAccounts},
		{"Preferred Date", in.PreferredDate},
		{"Preferred Time", in.PreferredTime},
		{"Audit Type", in.AuditType},
	}

	var lines []string
	for _, p := range pairs {
		if v := strings.TrimSpace(p.value); v != "" {
			lines = append(lines, p.label+": "+v)
		}
	}
	return strings.Join(lines, "\n")
}
