package uniqueness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPConfig configures the HTTP existence-check endpoint. Fields can be
// populated from environment variables via github.com/caarlos0/env.
type HTTPConfig struct {
	Endpoint string        `env:"UNIQUENESS_ENDPOINT,required"`          // Endpoint is the URL of the existence-check service.
	Timeout  time.Duration `env:"UNIQUENESS_TIMEOUT" envDefault:"5s"`    // Timeout bounds a single check request.
	Param    string        `env:"UNIQUENESS_PARAM" envDefault:"value"`   // Param is the query parameter carrying the checked value.
	FieldKey string        `env:"UNIQUENESS_FIELD_KEY" envDefault:"field"` // FieldKey is the query parameter carrying the field name.
}

// HTTPChecker performs a GET existence check against a remote endpoint.
// The endpoint is expected to respond 200 with a JSON body containing an
// "exists" boolean; any other response is surfaced as an error so the
// calling rule can fail open.
type HTTPChecker struct {
	cfg    HTTPConfig
	client *http.Client
}

// HTTPOption customizes an HTTPChecker.
type HTTPOption func(*HTTPChecker)

// WithHTTPClient overrides the default client, e.g. to add instrumentation.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPChecker) {
		if c != nil {
			h.client = c
		}
	}
}

// NewHTTPChecker creates a checker backed by the configured endpoint.
func NewHTTPChecker(cfg HTTPConfig, opts ...HTTPOption) (*HTTPChecker, error) {
	if cfg.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, errors.Join(ErrMissingEndpoint, err)
	}

	h := &HTTPChecker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// IsUnique reports whether the value is not yet taken for the given field.
func (h *HTTPChecker) IsUnique(ctx context.Context, field, value string) (bool, error) {
	u, err := url.Parse(h.cfg.Endpoint)
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}

	q := u.Query()
	q.Set(h.cfg.FieldKey, field)
	q.Set(h.cfg.Param, value)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: unexpected status %d", ErrCheckFailed, resp.StatusCode)
	}

	var body struct {
		Exists bool `json:"exists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}

	return !body.Exists, nil
}
