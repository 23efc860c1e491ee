package redox

import (
	"net/url"
	"time"

	"github.com/redoxbridge/redoxbridge/component/authn"
)

const (
	DefaultFHIRBaseURL = "https://api.redoxengine.com/fhir/R4"
	DefaultEnv         = "Development"
	DefaultTimeout     = 30 * time.Second
)

type Config struct {
	Auth        authn.Config `koanf:"auth"`
	FHIRBaseURL string       `koanf:"fhirbaseurl"`
	// OrgID is the Redox organization the source belongs to.
	OrgID string `koanf:"orgid"`
	// Env selects the Redox environment, e.g. Development, Staging or Production.
	Env      string `koanf:"env"`
	SourceID string `koanf:"sourceid"`
	// Timeout bounds every outbound request, both to the token endpoint and to the FHIR endpoint.
	Timeout time.Duration `koanf:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		Auth:        authn.DefaultConfig(),
		FHIRBaseURL: DefaultFHIRBaseURL,
		Env:         DefaultEnv,
		Timeout:     DefaultTimeout,
	}
}

// Validate checks the settings required to search Redox. Failures are reported as authn.ConfigurationError.
func (c Config) Validate() error {
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if c.OrgID == "" {
		return &authn.ConfigurationError{Setting: "orgid", Reason: "required setting is missing"}
	}
	if c.SourceID == "" {
		return &authn.ConfigurationError{Setting: "sourceid", Reason: "required setting is missing"}
	}
	if c.Env == "" {
		return &authn.ConfigurationError{Setting: "env", Reason: "required setting is missing"}
	}
	if _, err := url.ParseRequestURI(c.FHIRBaseURL); err != nil {
		return &authn.ConfigurationError{Setting: "fhirbaseurl", Reason: "invalid URL", Cause: err}
	}
	return nil
}

// searchBaseURL is the FHIR base all searches are relative to: {fhirBaseURL}/redox-fhir-sandbox/{env}.
func (c Config) searchBaseURL() (*url.URL, error) {
	baseURL, err := url.Parse(c.FHIRBaseURL)
	if err != nil {
		return nil, err
	}
	return baseURL.JoinPath("redox-fhir-sandbox", c.Env), nil
}
