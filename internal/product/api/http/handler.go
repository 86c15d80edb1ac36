package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/product/service"
)

// Handler содержит HTTP-обработчики Product Service
type Handler struct {
	logger         *zap.Logger
	productService *service.ProductService
}

// NewHandler создаёт новый HTTP handler
func NewHandler(logger *zap.Logger, productService *service.ProductService) *Handler {
	return &Handler{
		logger:         logger,
		productService: productService,
	}
}

// CreateProductRequest представляет HTTP запрос на добавление продукта
type CreateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Stock *int     `json:"stock"`
}

// ProductResponse представляет продукт в HTTP ответах
type ProductResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// PostProducts обрабатывает POST /products — добавление продукта
func (h *Handler) PostProducts(w http.ResponseWriter, r *http.Request) {
	var reqBody CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if reqBody.Name == nil || reqBody.Price == nil || reqBody.Stock == nil {
		writeError(w, http.StatusBadRequest, "name, price and stock required")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), service.CreateProductInput{
		Name:  *reqBody.Name,
		Price: *reqBody.Price,
		Stock: *reqBody.Stock,
	})
	if err != nil {
		h.logger.Error("product creation failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, ProductResponse{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	})
}

// GetProducts обрабатывает GET /products — список каталога
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, ProductResponse{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
			Stock: product.Stock,
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
