package model

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"google.golang.org/api/googleapi"
)

// Error kinds returned (wrapped) by providers.
var (
	ErrRateLimited       = errors.New("rate limited")
	ErrAuth              = errors.New("authentication failed")
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrAPI               = errors.New("model api error")
)

// Classify wraps err with the matching error kind. Errors that already carry a
// kind are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrRateLimited, ErrAuth, ErrNetwork, ErrMalformedResponse, ErrAPI} {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return fmt.Errorf("%w: %w", kindForStatus(oaiErr.StatusCode), err)
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return fmt.Errorf("%w: %w", kindForStatus(gErr.Code), err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	// gRPC-style status strings surface without a typed error.
	if strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", ErrAPI, err)
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	default:
		return ErrAPI
	}
}
