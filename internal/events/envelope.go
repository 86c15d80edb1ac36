package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type — тип доменного события. Закрытое множество, но расширяемое:
// неизвестные типы consumer-ы обязаны игнорировать, а не отвергать.
type Type string

const (
	// TypeOrderCreated — заказ создан (публикует order service)
	TypeOrderCreated Type = "ORDER_CREATED"
	// TypePaymentCompleted — оплата прошла успешно (публикует payment processor)
	TypePaymentCompleted Type = "PAYMENT_COMPLETED"
	// TypePaymentFailed — оплата не прошла (публикует payment processor)
	TypePaymentFailed Type = "PAYMENT_FAILED"
)

// Envelope — неизменяемый wire-формат события между всеми сервисами.
// correlationId назначается один раз на бизнес-транзакцию (заказ) и
// передаётся без изменений через все downstream события.
// occurredAt — время на часах producer-а, только для диагностики,
// не используется для ordering.
type Envelope struct {
	Type          Type            `json:"type"`
	CorrelationID string          `json:"correlationId"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload — payload события ORDER_CREATED
type OrderCreatedPayload struct {
	OrderID string  `json:"orderId"`
	UserID  string  `json:"userId"`
	Amount  float64 `json:"amount"`
}

// PaymentCompletedPayload — payload события PAYMENT_COMPLETED
type PaymentCompletedPayload struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"` // всегда "SUCCESS"
}

// PaymentFailedPayload — payload события PAYMENT_FAILED
type PaymentFailedPayload struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"` // всегда "FAILED"
	Reason    string `json:"reason"`
}

// PayloadError возвращается, когда payload конверта не соответствует
// заявленному типу. Consumer-ы обязаны отвергать такие конверты целиком,
// а не парсить их best-effort.
type PayloadError struct {
	Type    Type
	Message string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid payload for %s: %s", e.Type, e.Message)
}

// NewOrderCreated создаёт конверт события ORDER_CREATED
func NewOrderCreated(correlationID string, p OrderCreatedPayload) Envelope {
	return newEnvelope(TypeOrderCreated, correlationID, p)
}

// NewPaymentCompleted создаёт конверт события PAYMENT_COMPLETED.
// Статус в payload выставляется здесь, producer его не задаёт.
func NewPaymentCompleted(correlationID string, orderID, paymentID string) Envelope {
	return newEnvelope(TypePaymentCompleted, correlationID, PaymentCompletedPayload{
		OrderID:   orderID,
		PaymentID: paymentID,
		Status:    "SUCCESS",
	})
}

// NewPaymentFailed создаёт конверт события PAYMENT_FAILED
func NewPaymentFailed(correlationID string, orderID, paymentID, reason string) Envelope {
	return newEnvelope(TypePaymentFailed, correlationID, PaymentFailedPayload{
		OrderID:   orderID,
		PaymentID: paymentID,
		Status:    "FAILED",
		Reason:    reason,
	})
}

func newEnvelope(t Type, correlationID string, payload any) Envelope {
	// Payload собирается из доменного типа, поэтому Marshal не может упасть
	raw, _ := json.Marshal(payload)
	return Envelope{
		Type:          t,
		CorrelationID: correlationID,
		OccurredAt:    time.Now().UTC(),
		Payload:       raw,
	}
}

// Decode разбирает wire JSON в Envelope.
// Конверт без type считается malformed; неизвестный type валиден —
// решение "игнорировать" принимает consumer.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}

// Encode сериализует Envelope в wire JSON
func (e Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// OrderCreated возвращает типизированный payload конверта ORDER_CREATED.
// Возвращает PayloadError, если тип конверта другой или обязательные
// поля отсутствуют.
func (e Envelope) OrderCreated() (OrderCreatedPayload, error) {
	if e.Type != TypeOrderCreated {
		return OrderCreatedPayload{}, &PayloadError{Type: e.Type, Message: "envelope is not ORDER_CREATED"}
	}
	var p OrderCreatedPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return OrderCreatedPayload{}, &PayloadError{Type: e.Type, Message: err.Error()}
	}
	if p.OrderID == "" {
		return OrderCreatedPayload{}, &PayloadError{Type: e.Type, Message: "orderId is required"}
	}
	if p.UserID == "" {
		return OrderCreatedPayload{}, &PayloadError{Type: e.Type, Message: "userId is required"}
	}
	return p, nil
}

// PaymentCompleted возвращает типизированный payload конверта PAYMENT_COMPLETED
func (e Envelope) PaymentCompleted() (PaymentCompletedPayload, error) {
	if e.Type != TypePaymentCompleted {
		return PaymentCompletedPayload{}, &PayloadError{Type: e.Type, Message: "envelope is not PAYMENT_COMPLETED"}
	}
	var p PaymentCompletedPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return PaymentCompletedPayload{}, &PayloadError{Type: e.Type, Message: err.Error()}
	}
	if p.OrderID == "" {
		return PaymentCompletedPayload{}, &PayloadError{Type: e.Type, Message: "orderId is required"}
	}
	return p, nil
}

// PaymentFailed возвращает типизированный payload конверта PAYMENT_FAILED
func (e Envelope) PaymentFailed() (PaymentFailedPayload, error) {
	if e.Type != TypePaymentFailed {
		return PaymentFailedPayload{}, &PayloadError{Type: e.Type, Message: "envelope is not PAYMENT_FAILED"}
	}
	var p PaymentFailedPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return PaymentFailedPayload{}, &PayloadError{Type: e.Type, Message: err.Error()}
	}
	if p.OrderID == "" {
		return PaymentFailedPayload{}, &PayloadError{Type: e.Type, Message: "orderId is required"}
	}
	return p, nil
}
