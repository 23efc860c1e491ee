package fhirapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

// SendErrorResponse will send the given error as OperationOutcome to the API client.
// If the error isn't an Error instance, it will send a generic error back to the client, to avoid leaking sensitive internals.
func SendErrorResponse(ctx context.Context, httpResponse http.ResponseWriter, err error) {
	log.Ctx(ctx).Err(err).Msg("API error")
	statusCode := http.StatusInternalServerError
	var responseResource any
	var apiError *Error
	if ok := errors.As(err, &apiError); ok {
		switch apiError.IssueType {
		case fhir.IssueTypeInvalid,
			fhir.IssueTypeStructure,
			fhir.IssueTypeRequired,
			fhir.IssueTypeValue,
			fhir.IssueTypeInvariant:
			statusCode = http.StatusBadRequest
		case fhir.IssueTypeTransient,
			fhir.IssueTypeLockError,
			fhir.IssueTypeNoStore,
			fhir.IssueTypeTimeout,
			fhir.IssueTypeThrottled:
			statusCode = http.StatusServiceUnavailable
		case fhir.IssueTypeTooCostly:
			statusCode = http.StatusUnprocessableEntity
		case fhir.IssueTypeNotFound:
			statusCode = http.StatusNotFound
		}
		if apiError.StatusCode != 0 {
			statusCode = apiError.StatusCode
		}
		responseResource = apiError.OperationOutcome()
	} else {
		diagnostics := "An internal server error occurred"
		responseResource = fhir.OperationOutcome{
			Issue: []fhir.OperationOutcomeIssue{
				{
					Severity:    fhir.IssueSeverityError,
					Code:        fhir.IssueTypeProcessing,
					Diagnostics: &diagnostics,
				},
			},
		}
	}
	SendResponse(ctx, httpResponse, statusCode, responseResource)
}

// SendResponse sends a FHIR resource (application/fhir+json).
func SendResponse(ctx context.Context, httpResponse http.ResponseWriter, httpStatus int, resource any) {
	send(ctx, httpResponse, httpStatus, JSONMimeType, resource)
}

// SendJSONResponse sends a plain JSON document (application/json).
func SendJSONResponse(ctx context.Context, httpResponse http.ResponseWriter, httpStatus int, body any) {
	send(ctx, httpResponse, httpStatus, PlainJSONMimeType, body)
}

func send(ctx context.Context, httpResponse http.ResponseWriter, httpStatus int, contentType string, body any) {
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("Failed to marshal response")
		httpStatus = http.StatusInternalServerError
		contentType = JSONMimeType
		data = []byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"processing","diagnostics":"Failed to marshal response"}]}`)
	}
	httpResponse.Header().Set("Content-Type", contentType)
	httpResponse.Header().Set("Content-Length", strconv.Itoa(len(data)))
	httpResponse.WriteHeader(httpStatus)
	_, err = httpResponse.Write(data)
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("Failed to write response")
	}
}
