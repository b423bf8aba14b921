// Package client реализует клиентское состояние каталога: локальный список
// товаров, синхронизируемый с сервером через REST API. Список не является
// источником истины и меняется только по данным, подтверждённым сервером.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vitrine-shop/go-backend/internal/validation"
	"github.com/vitrine-shop/go-backend/pkg/e"
)

// Product — товар в представлении API.
type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     string     `json:"price"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Result — результат действия пользователя, отображаемый в UI.
type Result struct {
	Success bool
	Message string
}

// UpdatePayload — частичное обновление товара. nil означает «поле не меняется».
type UpdatePayload struct {
	Name  *string
	Price *string
	Image *string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Store хранит последний известный список товаров.
// Действия сериализуются: одно исходящее действие за раз, повторный клик
// по кнопке не породит параллельный запрос.
type Store struct {
	httpClient    *http.Client
	baseURL       string
	adminPassword string

	actionMu sync.Mutex // сериализация действий пользователя

	mu       sync.RWMutex
	products []Product
}

func NewStore(baseURL string, adminPassword string, httpClient *http.Client) *Store {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Store{
		httpClient:    httpClient,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		adminPassword: adminPassword,
	}
}

// Products возвращает копию локального списка товаров.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Product, len(s.products))
	copy(result, s.products)
	return result
}

// Fetch заменяет локальный список актуальным списком с сервера.
func (s *Store) Fetch(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	env, err := s.do(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("fetch products: %s", env.Message)
	}

	var products []Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return e.Wrap("fetch products", err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	return nil
}

// Create проверяет payload локально (гарантированно невалидный запрос не
// уходит в сеть), создаёт товар и добавляет в список подтверждённые
// сервером данные — включая назначенный идентификатор и нормализованную цену.
func (s *Store) Create(ctx context.Context, name, price, image string) Result {
	if _, err := validation.ValidateCreate(validation.CreateInput{
		Name:  name,
		Price: price,
		Image: image,
	}); err != nil {
		return Result{Success: false, Message: resultMessage(err)}
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	body := map[string]string{"name": name, "price": price, "image": image}
	env, err := s.do(ctx, http.MethodPost, "/api/products", body)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	if !env.Success {
		return Result{Success: false, Message: env.Message}
	}

	var created Product
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return Result{Success: false, Message: e.Wrap("create product", err).Error()}
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	s.mu.Unlock()

	return Result{Success: true, Message: "Product created successfully."}
}

// Update отправляет только переданные поля и по успеху заменяет товар
// в локальном списке версией, возвращённой сервером.
// При ошибке список остаётся прежним.
func (s *Store) Update(ctx context.Context, id string, payload UpdatePayload) Result {
	if _, err := validation.ValidateUpdate(validation.UpdateInput{
		Name:  payload.Name,
		Price: payload.Price,
		Image: payload.Image,
	}); err != nil {
		return Result{Success: false, Message: resultMessage(err)}
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	body := map[string]string{}
	if payload.Name != nil {
		body["name"] = *payload.Name
	}
	if payload.Price != nil {
		body["price"] = *payload.Price
	}
	if payload.Image != nil {
		body["image"] = *payload.Image
	}

	env, err := s.do(ctx, http.MethodPut, "/api/products/"+id, body)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	if !env.Success {
		return Result{Success: false, Message: env.Message}
	}

	var updated Product
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		return Result{Success: false, Message: e.Wrap("update product", err).Error()}
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return Result{Success: true, Message: "Product updated successfully."}
}

// Delete удаляет товар и по успеху убирает его из локального списка.
func (s *Store) Delete(ctx context.Context, id string) Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	env, err := s.do(ctx, http.MethodDelete, "/api/products/"+id, nil)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	if !env.Success {
		return Result{Success: false, Message: env.Message}
	}

	s.mu.Lock()
	filtered := s.products[:0]
	for _, product := range s.products {
		if product.ID != id {
			filtered = append(filtered, product)
		}
	}
	s.products = filtered
	s.mu.Unlock()

	return Result{Success: true, Message: "Product deleted successfully."}
}

// do выполняет запрос и разбирает конверт ответа.
// Не-2xx статусы не ошибка транспорта: конверт несёт message для UI.
func (s *Store) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, e.Wrap("marshal request", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, e.Wrap("build request", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.adminPassword != "" && method != http.MethodGet {
		req.Header.Set("X-Admin-Password", s.adminPassword)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, e.Wrap("perform request", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, e.Wrap("decode response", err)
	}

	return &env, nil
}

// resultMessage сокращает обёрнутую ошибку валидации до пользовательского текста.
func resultMessage(err error) string {
	switch {
	case errors.Is(err, e.ErrMissingFields):
		return "Please fill in all fields."
	case errors.Is(err, e.ErrInvalidPrice):
		return "Price must be a valid positive number."
	default:
		return err.Error()
	}
}
