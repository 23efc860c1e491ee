package fhirapi

import (
	"fmt"
	"net/http"

	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

// Error defines a problem that can be translated to a FHIR OperationOutcome, to be returned to the API client.
type Error struct {
	// Message is the message that can be returned to the API client.
	Message string
	// Cause is an optional error that is only logged internally, not returned to the API client.
	Cause error
	// IssueType is the FHIR issue type that is used in the OperationOutcome.
	IssueType fhir.IssueType
	// StatusCode overrides the HTTP status derived from IssueType, if set.
	StatusCode int
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e Error) Unwrap() error {
	return e.Cause
}

func (e Error) OperationOutcome() fhir.OperationOutcome {
	return fhir.OperationOutcome{
		Issue: []fhir.OperationOutcomeIssue{
			{
				Severity:    fhir.IssueSeverityError,
				Code:        e.IssueType,
				Diagnostics: &e.Message,
			},
		},
	}
}

func BadRequestError(message string, cause error) error {
	return &Error{
		Message:   message,
		Cause:     cause,
		IssueType: fhir.IssueTypeInvalid,
	}
}

// BadGatewayError reports a failing upstream server.
func BadGatewayError(message string, cause error) error {
	return &Error{
		Message:    message,
		Cause:      cause,
		IssueType:  fhir.IssueTypeTransient,
		StatusCode: http.StatusBadGateway,
	}
}

// UnavailableError reports a temporary problem; the client may retry.
func UnavailableError(message string, cause error) error {
	return &Error{
		Message:   message,
		Cause:     cause,
		IssueType: fhir.IssueTypeTransient,
	}
}

// InternalError reports a problem on our side that retrying won't fix.
func InternalError(message string, cause error) error {
	return &Error{
		Message:   message,
		Cause:     cause,
		IssueType: fhir.IssueTypeException,
	}
}
