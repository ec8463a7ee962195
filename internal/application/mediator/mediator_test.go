package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "pong:" + request.(*pingQuery).Value, nil
}

func TestMediator_DispatchesThroughMiddlewareInOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var order []string
	record := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			resp, err := next(ctx, request)
			order = append(order, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(record("outer"))
	m.RegisterMiddleware(record("inner"))

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:x", resp)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestMediator_Errors(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &struct{}{})
	assert.Error(t, err)

	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
	denied := errors.New("denied")
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.ErrorIs(t, err, denied)
}
