package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

func TestLocalInvoker_InvokesRegisteredHandler(t *testing.T) {
	inv := NewLocalInvoker(zap.NewNop())

	var (
		mu       sync.Mutex
		received []events.Envelope
	)
	inv.Register("payment-processor", func(ctx context.Context, env events.Envelope) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, env)
		return nil
	})

	env := events.NewOrderCreated("cid-1", events.OrderCreatedPayload{
		OrderID: "o1",
		UserID:  "u1",
		Amount:  10,
	})
	payload, err := env.Encode()
	require.NoError(t, err)

	require.NoError(t, inv.InvokeAsync(context.Background(), "payment-processor", payload))
	inv.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, events.TypeOrderCreated, received[0].Type)
	assert.Equal(t, "cid-1", received[0].CorrelationID)
}

func TestLocalInvoker_UnknownFunction(t *testing.T) {
	inv := NewLocalInvoker(zap.NewNop())

	err := inv.InvokeAsync(context.Background(), "missing", []byte(`{}`))
	assert.Error(t, err)
}

func TestLocalInvoker_MalformedPayload(t *testing.T) {
	inv := NewLocalInvoker(zap.NewNop())
	inv.Register("fn", func(ctx context.Context, env events.Envelope) error { return nil })

	err := inv.InvokeAsync(context.Background(), "fn", []byte(`not json`))
	assert.Error(t, err)
}

func TestLocalInvoker_HandlerErrorDoesNotPropagate(t *testing.T) {
	inv := NewLocalInvoker(zap.NewNop())
	inv.Register("fn", func(ctx context.Context, env events.Envelope) error {
		return errors.New("handler exploded")
	})

	env := events.NewPaymentCompleted("cid-1", "o1", "pay_1")
	payload, err := env.Encode()
	require.NoError(t, err)

	// Асинхронная семантика: инвокация принята, её исход не всплывает
	assert.NoError(t, inv.InvokeAsync(context.Background(), "fn", payload))
	inv.Wait()
}

// capturingInvoker записывает принятые инвокации
type capturingInvoker struct {
	mu      sync.Mutex
	invoked []invocation
	err     error
}

type invocation struct {
	function string
	payload  []byte
}

func (i *capturingInvoker) InvokeAsync(ctx context.Context, function string, payload []byte) error {
	if i.err != nil {
		return i.err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.invoked = append(i.invoked, invocation{function: function, payload: payload})
	return nil
}

func TestWorker_DispatchPassesEncodedEnvelope(t *testing.T) {
	inv := &capturingInvoker{}
	w := &Worker{
		logger:   zap.NewNop(),
		invoker:  inv,
		function: "payment-processor",
	}

	env := events.NewOrderCreated("cid-7", events.OrderCreatedPayload{
		OrderID: "o1",
		UserID:  "u1",
		Amount:  5,
	})

	require.NoError(t, w.dispatch(context.Background(), env))
	require.Len(t, inv.invoked, 1)
	assert.Equal(t, "payment-processor", inv.invoked[0].function)

	decoded, err := events.Decode(inv.invoked[0].payload)
	require.NoError(t, err)
	assert.Equal(t, env.Type, decoded.Type)
	assert.Equal(t, "cid-7", decoded.CorrelationID)
}

func TestWorker_DispatchFailureDoesNotStopLoop(t *testing.T) {
	inv := &capturingInvoker{err: errors.New("lambda throttled")}
	w := &Worker{
		logger:   zap.NewNop(),
		invoker:  inv,
		function: "payment-processor",
	}

	env := events.NewOrderCreated("cid-1", events.OrderCreatedPayload{
		OrderID: "o1",
		UserID:  "u1",
		Amount:  5,
	})

	// nil: событие коммитится, луп продолжает чтение
	assert.NoError(t, w.dispatch(context.Background(), env))
}
