package mediator

import (
	"context"
	"reflect"
	"strings"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware is a function that wraps handler execution with cross-cutting concerns
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// RequestName returns the bare type name of a request.
// Examples:
//   - "*queries.FindArbitrageOpportunitiesQuery" → "FindArbitrageOpportunitiesQuery"
//   - "*queries.ValidatePricePointQuery" → "ValidatePricePointQuery"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
