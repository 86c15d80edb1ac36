package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// capturingPublisher записывает все публикации для проверок
type capturingPublisher struct {
	published []publishedEvent
	err       error
}

type publishedEvent struct {
	topic string
	key   string
	env   events.Envelope
}

func (p *capturingPublisher) Publish(ctx context.Context, topic, key string, env events.Envelope) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedEvent{topic: topic, key: key, env: env})
	return nil
}

func TestProcessor_Handle_PublishesExactlyOneCompleted(t *testing.T) {
	pub := &capturingPublisher{}
	proc := NewProcessor(zap.NewNop(), pub, "payment.events")

	in := events.NewOrderCreated("cid-42", events.OrderCreatedPayload{
		OrderID: "o1",
		UserID:  "u1",
		Amount:  42.5,
	})

	require.NoError(t, proc.Handle(context.Background(), in))
	require.Len(t, pub.published, 1)

	out := pub.published[0]
	assert.Equal(t, "payment.events", out.topic)
	// partition key — тот же orderId: события одного заказа упорядочены
	assert.Equal(t, "o1", out.key)
	assert.Equal(t, events.TypePaymentCompleted, out.env.Type)
	// correlation id проходит verbatim
	assert.Equal(t, "cid-42", out.env.CorrelationID)

	payload, err := out.env.PaymentCompleted()
	require.NoError(t, err)
	assert.Equal(t, "o1", payload.OrderID)
	assert.Equal(t, "SUCCESS", payload.Status)
	assert.True(t, strings.HasPrefix(payload.PaymentID, "pay_o1_"))
}

func TestProcessor_Handle_NonPositiveAmountFails(t *testing.T) {
	pub := &capturingPublisher{}
	proc := NewProcessor(zap.NewNop(), pub, "payment.events")

	in := events.NewOrderCreated("cid-1", events.OrderCreatedPayload{
		OrderID: "o2",
		UserID:  "u1",
		Amount:  0,
	})

	require.NoError(t, proc.Handle(context.Background(), in))
	require.Len(t, pub.published, 1)

	out := pub.published[0]
	assert.Equal(t, events.TypePaymentFailed, out.env.Type)

	payload, err := out.env.PaymentFailed()
	require.NoError(t, err)
	assert.Equal(t, "o2", payload.OrderID)
	assert.Equal(t, "FAILED", payload.Status)
	assert.Equal(t, "non-positive amount", payload.Reason)
}

func TestProcessor_Handle_IgnoresOtherTypes(t *testing.T) {
	pub := &capturingPublisher{}
	proc := NewProcessor(zap.NewNop(), pub, "payment.events")

	tests := []struct {
		name string
		env  events.Envelope
	}{
		{name: "payment completed", env: events.NewPaymentCompleted("cid-1", "o1", "pay_1")},
		{name: "unknown type", env: events.Envelope{Type: "ORDER_SHIPPED", Payload: []byte(`{}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, proc.Handle(context.Background(), tt.env))
			assert.Empty(t, pub.published)
		})
	}
}

func TestProcessor_Handle_MalformedPayloadIgnored(t *testing.T) {
	pub := &capturingPublisher{}
	proc := NewProcessor(zap.NewNop(), pub, "payment.events")

	env := events.Envelope{
		Type:          events.TypeOrderCreated,
		CorrelationID: "cid-1",
		Payload:       []byte(`{"userId":"u1"}`), // нет orderId
	}

	require.NoError(t, proc.Handle(context.Background(), env))
	assert.Empty(t, pub.published)
}

func TestProcessor_Handle_PublishErrorPropagates(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker unavailable")}
	proc := NewProcessor(zap.NewNop(), pub, "payment.events")

	in := events.NewOrderCreated("cid-1", events.OrderCreatedPayload{
		OrderID: "o1",
		UserID:  "u1",
		Amount:  10,
	})

	// Недоступность лога — неуспех инвокации, retry делает invoker
	err := proc.Handle(context.Background(), in)
	assert.Error(t, err)
}
