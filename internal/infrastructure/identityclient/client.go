// Package identityclient reads doctors, patients and clinics from the
// identity service on behalf of the appointments service.
package identityclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// TokenSource supplies service tokens keyed by proxied role.
type TokenSource interface {
	Token(proxied domain.Role) (string, error)
}

// Client is a fail-closed ports.Directory: every failure reads as "not found".
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	log       zerolog.Logger
	onFailure func(entity, reason string)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithFailureObserver registers fn to be called on every failed lookup.
func WithFailureObserver(fn func(entity, reason string)) Option {
	return func(c *Client) { c.onFailure = fn }
}

// New returns a Client for the identity service at baseURL. Every request
// is bounded by timeout.
func New(baseURL string, tokens TokenSource, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Doctor fetches a doctor with a token proxying requester.
func (c *Client) Doctor(ctx context.Context, id int64, requester domain.Role) (*domain.Doctor, bool) {
	var d domain.Doctor
	if !c.fetch(ctx, "doctor", fmt.Sprintf("/api/v1/admin/doctor/%d", id), requester, &d) {
		return nil, false
	}
	return &d, true
}

// Patient fetches an active patient with a token proxying requester.
func (c *Client) Patient(ctx context.Context, id int64, requester domain.Role) (*domain.Patient, bool) {
	var p domain.Patient
	path := fmt.Sprintf("/api/v1/admin/paciente/%d?estado=%s", id, domain.PatientActive)
	if !c.fetch(ctx, "patient", path, requester, &p) {
		return nil, false
	}
	return &p, true
}

// Clinic fetches a clinic with a token that proxies no end user.
func (c *Client) Clinic(ctx context.Context, id int64) (*domain.Clinic, bool) {
	var cl domain.Clinic
	if !c.fetch(ctx, "clinic", fmt.Sprintf("/api/v1/admin/centro/%d", id), "", &cl) {
		return nil, false
	}
	return &cl, true
}

func (c *Client) fetch(ctx context.Context, entity, path string, proxied domain.Role, out any) bool {
	tok, err := c.tokens.Token(proxied)
	if err != nil {
		c.fail(entity, path, "token", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		c.fail(entity, path, "request", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.fail(entity, path, "transport", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.fail(entity, path, "status", fmt.Errorf("identity service answered %d", resp.StatusCode))
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.fail(entity, path, "decode", err)
		return false
	}
	return true
}

func (c *Client) fail(entity, path, reason string, err error) {
	c.log.Warn().
		Err(err).
		Str("entity", entity).
		Str("path", path).
		Str("reason", reason).
		Msg("identity lookup failed")
	if c.onFailure != nil {
		c.onFailure(entity, reason)
	}
}
