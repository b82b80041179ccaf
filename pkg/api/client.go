package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/contract"
	"github.com/goliatone/go-agenda/pkg/logger"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "go-agenda/1.0"
	maxBodyBytes     = 4 << 20
	requestIDHeader  = "X-Request-ID"
)

// Config controls how the Client talks to the backend.
type Config struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// SessionCookie is a raw "name=value" pair forwarded on every request, for
	// backends that authenticate with a browser session.
	SessionCookie string
	Timeout       time.Duration
	HTTPClient    *http.Client
	Logger        *zap.Logger
	// Validator defaults to contract.Default when nil.
	Validator *contract.Validator
	// SkipValidation disables contract checks on both directions.
	SkipValidation bool
	UserAgent      string
}

// Client wraps the booking REST endpoints.
type Client struct {
	baseURL       string
	token         string
	sessionCookie string
	httpClient    *http.Client
	validator     *contract.Validator
	logger        *zap.Logger
	userAgent     string
	newRequestID  func() string
}

// New creates a configured Client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	validator := cfg.Validator
	if validator == nil && !cfg.SkipValidation {
		v, err := contract.Default()
		if err != nil {
			return nil, err
		}
		validator = v
	}
	if cfg.SkipValidation {
		validator = nil
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:       baseURL,
		token:         strings.TrimSpace(cfg.Token),
		sessionCookie: strings.TrimSpace(cfg.SessionCookie),
		httpClient:    httpClient,
		validator:     validator,
		logger:        logger.OrNop(cfg.Logger),
		userAgent:     userAgent,
		newRequestID:  uuid.NewString,
	}, nil
}

// ListAppointments fetches the calendar-shaped collection. A non-empty window
// is sent as start/end query parameters.
func (c *Client) ListAppointments(ctx context.Context, window *appointment.Range) ([]appointment.Event, error) {
	var query url.Values
	if window != nil && !window.Empty() {
		query = url.Values{}
		if !window.Start.IsZero() {
			query.Set("start", appointment.FormatISO(window.Start))
		}
		if !window.End.IsZero() {
			query.Set("end", appointment.FormatISO(window.End))
		}
	}
	var out []appointment.Event
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  contract.RouteAppointments,
		path:   contract.RouteAppointments,
		query:  query,
	}, &out)
	return out, err
}

// ListCancelled fetches the cancelled-appointments history.
func (c *Client) ListCancelled(ctx context.Context) ([]appointment.Cancelled, error) {
	var out []appointment.Cancelled
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  contract.RouteCancelled,
		path:   contract.RouteCancelled,
	}, &out)
	return out, err
}

// ListClients fetches the clients available for assignment.
func (c *Client) ListClients(ctx context.Context) ([]appointment.Client, error) {
	var out []appointment.Client
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  contract.RouteClients,
		path:   contract.RouteClients,
	}, &out)
	return out, err
}

// Stats fetches the role-shaped counters.
func (c *Client) Stats(ctx context.Context) (appointment.Stats, error) {
	var out appointment.Stats
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  contract.RouteStats,
		path:   contract.RouteStats,
	}, &out)
	return out, err
}

// Create submits a new appointment.
func (c *Client) Create(ctx context.Context, req appointment.SaveRequest) (appointment.MessageResponse, error) {
	var out appointment.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  contract.RouteAppointments,
		path:   contract.RouteAppointments,
		body:   req,
	}, &out)
	return out, err
}

// Update replaces every editable field of an appointment.
func (c *Client) Update(ctx context.Context, id appointment.ID, req appointment.SaveRequest) (appointment.MessageResponse, error) {
	var out appointment.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  contract.RouteAppointment,
		path:   appointmentPath(id, ""),
		body:   req,
	}, &out)
	return out, err
}

// Delete permanently removes an appointment.
func (c *Client) Delete(ctx context.Context, id appointment.ID) (appointment.MessageResponse, error) {
	var out appointment.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodDelete,
		route:  contract.RouteAppointment,
		path:   appointmentPath(id, ""),
	}, &out)
	return out, err
}

// Complete transitions an appointment to completed.
func (c *Client) Complete(ctx context.Context, id appointment.ID) (appointment.MessageResponse, error) {
	var out appointment.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  contract.RouteAppointmentComplete,
		path:   appointmentPath(id, "complete"),
	}, &out)
	return out, err
}

// Cancel transitions an appointment to cancelled with a reason.
func (c *Client) Cancel(ctx context.Context, id appointment.ID, reason string) (appointment.MessageResponse, error) {
	var out appointment.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  contract.RouteAppointmentCancel,
		path:   appointmentPath(id, "cancel"),
		body:   appointment.CancelRequest{Reason: reason},
	}, &out)
	return out, err
}

func appointmentPath(id appointment.ID, action string) string {
	path := contract.RouteAppointments + "/" + url.PathEscape(id.String())
	if action != "" {
		path += "/" + action
	}
	return path
}

type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	var payload []byte
	if in.body != nil {
		encoded, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", in.method, in.path, err)
		}
		if c.validator != nil {
			if err := c.validator.ValidateRequest(in.method, in.route, encoded); err != nil {
				return err
			}
		}
		payload = encoded
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", in.method, in.path, err)
	}
	requestID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", in.method),
			zap.String("path", in.path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &TransportError{Method: in.method, Path: in.path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Method: in.method, Path: in.path, Err: err}
	}

	c.logger.Debug("request completed",
		zap.String("method", in.method),
		zap.String("path", in.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(started)),
	)

	if !contract.IsSuccess(resp.StatusCode) {
		return c.rejection(in, resp.StatusCode, requestID, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		if _, ok := out.(*appointment.MessageResponse); ok {
			return nil
		}
		return &DecodeError{Method: in.method, Path: in.path, Status: resp.StatusCode, Err: io.ErrUnexpectedEOF}
	}
	if c.validator != nil {
		if err := c.validator.ValidateResponse(in.method, in.route, resp.StatusCode, raw); err != nil {
			return &DecodeError{Method: in.method, Path: in.path, Status: resp.StatusCode, Err: err}
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Method: in.method, Path: in.path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) rejection(in call, status int, requestID string, raw []byte) error {
	reqErr := &RequestError{
		Method:    in.method,
		Path:      in.path,
		Status:    status,
		RequestID: requestID,
	}
	var envelope appointment.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return reqErr
	}
	if c.validator != nil {
		if err := c.validator.ValidateResponse(in.method, in.route, status, raw); err != nil {
			c.logger.Debug("unstructured rejection",
				zap.String("path", in.path),
				zap.Int("status", status),
				zap.Error(err),
			)
			return reqErr
		}
	}
	reqErr.Message = strings.TrimSpace(envelope.Error)
	return reqErr
}
