package authn

import "fmt"

// ConfigurationError indicates a missing setting or unusable key material. It is fatal at startup.
type ConfigurationError struct {
	Setting string
	Reason  string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid configuration (%s): %s", e.Setting, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// AuthenticationError indicates the authorization server could not be reached or rejected the client assertion.
// The cause is meant for logging, not for callers of the API.
type AuthenticationError struct {
	Cause error
}

func (e *AuthenticationError) Error() string {
	if e.Cause == nil {
		return "failed to authenticate"
	}
	return "failed to authenticate: " + e.Cause.Error()
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}
