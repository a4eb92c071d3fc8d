package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// describeFailure rewrites a provider failure so its text carries the words
// the error taxonomy classifies on, keeping the original error wrapped.
func describeFailure(provider string, status int, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s request timeout: %w", provider, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s rejected the request: invalid API key: %w", provider, err)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s rate limit exceeded: %w", provider, err)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%s request timeout: %w", provider, err)
	default:
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
}
