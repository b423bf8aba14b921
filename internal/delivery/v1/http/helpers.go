package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vitrine-shop/go-backend/internal/domain"
	"github.com/vitrine-shop/go-backend/pkg/e"
)

// Envelope — единая форма ответа API: клиент ветвится по одному полю success.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProductResponse — представление товара в ответе API.
type ProductResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     string     `json:"price"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func NewProductListResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, NewProductResponse(&products[i]))
	}

	return result
}

// ToHTTPResponse переводит ошибку в HTTP-код и безопасное для клиента сообщение.
// Внутренние детали хранилища наружу не отдаются.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrPasswordRequired):
		return http.StatusUnauthorized, e.ErrPasswordRequired.Error()
	case errors.Is(err, e.ErrWrongPassword):
		return http.StatusForbidden, e.ErrWrongPassword.Error()
	case errors.Is(err, e.ErrIPNotAllowed):
		return http.StatusForbidden, e.ErrIPNotAllowed.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrRequestTooLarge.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Envelope{Success: false, Message: msg})
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

func WriteSuccessMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Message: message})
}
