package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentCompleted_CarriesCorrelationVerbatim(t *testing.T) {
	env := NewPaymentCompleted("cid-abc-123", "o1", "pay_o1_1")

	assert.Equal(t, TypePaymentCompleted, env.Type)
	assert.Equal(t, "cid-abc-123", env.CorrelationID)

	p, err := env.PaymentCompleted()
	require.NoError(t, err)
	assert.Equal(t, "o1", p.OrderID)
	assert.Equal(t, "pay_o1_1", p.PaymentID)
	assert.Equal(t, "SUCCESS", p.Status)
}

func TestDecode_UnknownTypeIsValid(t *testing.T) {
	// Добавление нового типа не должно ломать существующих consumer-ов:
	// конверт декодируется, решение "игнорировать" принимается выше.
	raw := []byte(`{"type":"ORDER_SHIPPED","correlationId":"cid-1","occurredAt":"2026-01-02T03:04:05Z","payload":{"orderId":"o1"}}`)

	env, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, Type("ORDER_SHIPPED"), env.Type)

	// Но типизированный доступ к нему невозможен
	_, err = env.PaymentCompleted()
	var payloadErr *PayloadError
	assert.True(t, errors.As(err, &payloadErr))
}

func TestDecode_MissingTypeIsMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"correlationId":"cid-1","payload":{}}`))
	assert.Error(t, err)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.Error(t, err)
}

func TestOrderCreated_RejectsWrongShape(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing orderId", payload: `{"userId":"u1","amount":42.5}`},
		{name: "missing userId", payload: `{"orderId":"o1","amount":42.5}`},
		{name: "payload of another event", payload: `{"paymentId":"pay-1","status":"SUCCESS"}`},
		{name: "payload is not an object", payload: `"oops"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Envelope{
				Type:          TypeOrderCreated,
				CorrelationID: "cid-1",
				Payload:       json.RawMessage(tt.payload),
			}
			_, err := env.OrderCreated()
			var payloadErr *PayloadError
			require.True(t, errors.As(err, &payloadErr))
			assert.Equal(t, TypeOrderCreated, payloadErr.Type)
		})
	}
}

func TestOrderCreated_TypeMismatch(t *testing.T) {
	env := NewPaymentCompleted("cid-1", "o1", "pay-1")
	_, err := env.OrderCreated()
	assert.Error(t, err)
}

func TestEnvelope_WireFormat(t *testing.T) {
	// Wire-формат стабилен: camelCase поля, payload определяется type
	env := NewOrderCreated("cid-9", OrderCreatedPayload{OrderID: "o1", UserID: "u1", Amount: 42.5})

	data, err := env.Encode()
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Contains(t, wire, "type")
	assert.Contains(t, wire, "correlationId")
	assert.Contains(t, wire, "occurredAt")
	assert.Contains(t, wire, "payload")

	decoded, err := Decode(data)
	require.NoError(t, err)
	p, err := decoded.OrderCreated()
	require.NoError(t, err)
	assert.Equal(t, 42.5, p.Amount)
	assert.Equal(t, "u1", p.UserID)
}
