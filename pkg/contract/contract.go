package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

const jsonMediaType = "application/json"

// Route templates as declared in the embedded document.
const (
	RouteAppointments        = "/api/appointments"
	RouteCancelled           = "/api/appointments/cancelled"
	RouteAppointment         = "/api/appointments/{id}"
	RouteAppointmentComplete = "/api/appointments/{id}/complete"
	RouteAppointmentCancel   = "/api/appointments/{id}/cancel"
	RouteClients             = "/api/clients"
	RouteStats               = "/api/stats"
)

// ErrUnknownOperation is returned when a method/route pair is not documented.
var ErrUnknownOperation = errors.New("contract: unknown operation")

// ViolationError reports a body that does not match the documented schema.
type ViolationError struct {
	Method string
	Route  string
	Status int
	Err    error
}

func (e *ViolationError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("contract: %s %s (%d): %v", e.Method, e.Route, e.Status, e.Err)
	}
	return fmt.Sprintf("contract: %s %s request: %v", e.Method, e.Route, e.Err)
}

func (e *ViolationError) Unwrap() error { return e.Err }

// Validator checks payloads against the embedded document.
type Validator struct {
	doc *openapi3.T
}

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Validator, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	return &Validator{doc: doc}, nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns a process-wide validator built from the embedded document.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = Load(context.Background())
	})
	return defaultValidator, defaultErr
}

// ValidateRequest checks a JSON request body for the given operation.
// Operations without a documented body accept anything.
func (v *Validator) ValidateRequest(method, route string, body []byte) error {
	op, err := v.operation(method, route)
	if err != nil {
		return err
	}
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	schema := schemaFor(op.RequestBody.Value.Content)
	if schema == nil {
		return nil
	}
	if err := visit(schema, body); err != nil {
		return &ViolationError{Method: method, Route: route, Err: err}
	}
	return nil
}

// ValidateResponse checks a JSON response body for the given operation and
// status. Statuses without a documented schema accept anything.
func (v *Validator) ValidateResponse(method, route string, status int, body []byte) error {
	op, err := v.operation(method, route)
	if err != nil {
		return err
	}
	if op.Responses == nil {
		return nil
	}
	ref := op.Responses.Status(status)
	if ref == nil {
		ref = op.Responses.Default()
	}
	if ref == nil || ref.Value == nil {
		return nil
	}
	schema := schemaFor(ref.Value.Content)
	if schema == nil {
		return nil
	}
	if err := visit(schema, body); err != nil {
		return &ViolationError{Method: method, Route: route, Status: status, Err: err}
	}
	return nil
}

func (v *Validator) operation(method, route string) (*openapi3.Operation, error) {
	if v == nil || v.doc == nil || v.doc.Paths == nil {
		return nil, errors.New("contract: validator is not loaded")
	}
	item := v.doc.Paths.Find(route)
	if item == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownOperation, method, route)
	}
	op := item.GetOperation(strings.ToUpper(method))
	if op == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownOperation, method, route)
	}
	return op, nil
}

func schemaFor(content openapi3.Content) *openapi3.Schema {
	if content == nil {
		return nil
	}
	media := content.Get(jsonMediaType)
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func visit(schema *openapi3.Schema, body []byte) error {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return schema.VisitJSON(data)
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
