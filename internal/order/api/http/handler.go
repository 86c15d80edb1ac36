package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/service"
)

// Handler содержит HTTP-обработчики Order Service
type Handler struct {
	logger       *zap.Logger
	orderService *service.OrderService
}

// NewHandler создаёт новый HTTP handler
func NewHandler(logger *zap.Logger, orderService *service.OrderService) *Handler {
	return &Handler{
		logger:       logger,
		orderService: orderService,
	}
}

// CreateOrderRequest представляет HTTP запрос на создание заказа.
// userId не принимается из тела: он берётся из токена.
type CreateOrderRequest struct {
	Amount *float64 `json:"amount"`
}

// OrderResponse представляет HTTP ответ с информацией о заказе
type OrderResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// PostOrders обрабатывает POST /orders — создание нового заказа
func (h *Handler) PostOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqBody CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if reqBody.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount required")
		return
	}

	// userId поставляет auth middleware; core доверяет этому значению
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	order, err := h.orderService.CreateOrder(ctx, service.CreateOrderInput{
		UserID: user.ID,
		Amount: *reqBody.Amount,
	})
	if err != nil {
		h.logger.Error("order creation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Amount: order.Amount,
		Status: order.Status,
	})
}

// GetOrders обрабатывает GET /orders — список всех заказов
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("list orders failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, OrderResponse{
			ID:     order.ID,
			UserID: order.UserID,
			Amount: order.Amount,
			Status: order.Status,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
