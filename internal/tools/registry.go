package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/parkscope/parkscope/internal/upstream"
)

// ErrUnknownTool is returned by Call for unregistered names.
var ErrUnknownTool = errors.New("unknown tool")

var validate = validator.New()

// Schema is a JSON Schema node describing a tool's parameters.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Handler executes one operation. It returns either the operation's
// result or an upstream.Document; it never returns a Go error, so every
// failure reaching the boundary is a structured document.
type Handler func(ctx context.Context, params json.RawMessage) any

// Tool describes one named operation.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`

	handler Handler
}

// Registry maps operation names to their handlers, preserving
// registration order for listings.
type Registry struct {
	tools map[string]Tool
	order []string
}

func (r *Registry) register(t Tool, h Handler) {
	t.handler = h
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Call dispatches name with raw JSON params.
func (r *Registry) Call(ctx context.Context, name string, params json.RawMessage) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.handler(ctx, params), nil
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// bind unmarshals raw params into a record and validates it. A non-nil
// document means the parameters were rejected before any lookup ran.
func bind[T any](raw json.RawMessage, out *T) *upstream.Document {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &upstream.Document{
				Error:   "validation_error",
				Message: "Invalid parameters",
				Details: map[string]any{"error": err.Error()},
			}
		}
	}
	if err := validate.Struct(out); err != nil {
		return validationDocument(err)
	}
	return nil
}

func validationDocument(err error) *upstream.Document {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &upstream.Document{
			Error:   "validation_error",
			Message: "Invalid parameters",
			Details: map[string]any{"error": err.Error()},
		}
	}

	fields := make([]map[string]any, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]any{
			"field":      fe.Field(),
			"constraint": fe.Tag(),
			"value":      fe.Value(),
		})
	}
	return &upstream.Document{
		Error:   "validation_error",
		Message: "Invalid parameters",
		Details: map[string]any{"fields": fields},
	}
}
