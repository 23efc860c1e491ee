package redox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	fhirclient "github.com/SanteonNL/go-fhir-client"
	"github.com/rs/zerolog/log"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"

	"github.com/redoxbridge/redoxbridge/lib/fhirutil"
	"github.com/redoxbridge/redoxbridge/lib/metrics"
)

// TokenSource provides bearer tokens for the FHIR endpoint.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client searches the Redox FHIR API on behalf of the configured source.
type Client struct {
	fhirClient fhirclient.Client
	baseURL    *url.URL
	tokens     TokenSource
	sourceID   string
}

func NewClient(config Config, tokens TokenSource, httpClient *http.Client) (*Client, error) {
	baseURL, err := config.searchBaseURL()
	if err != nil {
		return nil, err
	}
	return &Client{
		fhirClient: fhirclient.New(baseURL, httpClient, fhirutil.ClientConfig()),
		baseURL:    baseURL,
		tokens:     tokens,
		sourceID:   config.SourceID,
	}, nil
}

// Search performs a FHIR search (POST {base}/{kind}/_search) with the given parameters and returns the raw resources
// of the first result page. Failures to obtain a token are returned as they are; failures of the search itself are
// returned as SearchError.
func (c *Client) Search(ctx context.Context, kind ResourceKind, params url.Values) ([]json.RawMessage, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		metrics.Searches.WithLabelValues(string(kind), metrics.OutcomeFailure).Inc()
		return nil, err
	}
	var bundle fhir.Bundle
	err = c.fhirClient.SearchWithContext(ctx, string(kind), params, &bundle, fhirclient.RequestHeaders(map[string][]string{
		"Authorization":   {"Bearer " + token},
		"redox-source-id": {c.sourceID},
	}))
	if err != nil {
		metrics.Searches.WithLabelValues(string(kind), metrics.OutcomeFailure).Inc()
		log.Ctx(ctx).Error().Err(err).
			Str("resourceType", string(kind)).
			Str("fhirServer", c.baseURL.String()).
			Msg("FHIR search failed")
		return nil, &SearchError{Kind: kind, Cause: err}
	}
	metrics.Searches.WithLabelValues(string(kind), metrics.OutcomeSuccess).Inc()
	resources := fhirutil.EntryResources(bundle)
	if next := fhirutil.NextLink(bundle); next != "" {
		log.Ctx(ctx).Debug().
			Str("resourceType", string(kind)).
			Int("entries", len(resources)).
			Msg("FHIR search has more result pages, only the first page is returned")
	}
	return resources, nil
}
