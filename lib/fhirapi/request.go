package fhirapi

import (
	"encoding/json"
	"mime"
	"net/http"
)

const (
	JSONMimeType      = "application/fhir+json"
	PlainJSONMimeType = "application/json"
)

type Request[T any] struct {
	Body T
}

// ReadRequest reads a JSON request body (application/json or application/fhir+json) into T.
// If it fails, the returned error can be sent to the client as OperationOutcome.
func ReadRequest[T any](httpRequest *http.Request) (*Request[T], error) {
	mediaType, _, err := mime.ParseMediaType(httpRequest.Header.Get("Content-Type"))
	if err != nil {
		return nil, BadRequestError("invalid content type", err)
	}
	if mediaType != JSONMimeType && mediaType != PlainJSONMimeType {
		return nil, BadRequestError("invalid content type, expected application/json or application/fhir+json", nil)
	}
	var body T
	err = json.NewDecoder(httpRequest.Body).Decode(&body)
	if err != nil {
		return nil, BadRequestError("request body is not valid JSON", err)
	}
	return &Request[T]{
		Body: body,
	}, nil
}
