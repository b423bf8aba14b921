package http

import (
	"encoding/json"
	"net/http"

	"github.com/vitrine-shop/go-backend/internal/usecase"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/vitrine-shop/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// createProductRequest — тело запроса на создание товара.
// Поле adminPassword обрабатывается guard-middleware и здесь игнорируется.
type createProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// updateProductRequest — частичное обновление: отсутствующие поля не меняются.
type updateProductRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
	Image *string `json:"image"`
}

// listProducts
//
//	@Summary		Список товаров каталога
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	Envelope	"Список товаров"
//	@Failure		500	{object}	Envelope	"Ошибка сервера"
//	@Router			/api/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.catalogUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductListResponse(products))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создаёт новый товар в каталоге. Требует админ-доступа.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		createProductRequest	true	"Название, цена и URL изображения"
//	@Success		201		{object}	Envelope	"Созданный товар"
//	@Failure		400		{object}	Envelope	"Ошибка валидации"
//	@Failure		401		{object}	Envelope	"Пароль не передан"
//	@Failure		403		{object}	Envelope	"Доступ запрещён"
//	@Router			/api/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	product, err := p.catalogUsecase.CreateProduct(r.Context(), usecase.NewCreateProductReq(req.Name, req.Price, req.Image))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewProductResponse(product))
}

// updateProduct
//
//	@Summary		Частичное обновление товара
//	@Description	Меняет только переданные поля. Требует админ-доступа.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Идентификатор товара"
//	@Param			payload	body		updateProductRequest	true	"Изменяемые поля"
//	@Success		200		{object}	Envelope	"Товар после обновления"
//	@Failure		400		{object}	Envelope	"Ошибка валидации или некорректный идентификатор"
//	@Failure		404		{object}	Envelope	"Товар не найден"
//	@Router			/api/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	product, err := p.catalogUsecase.UpdateProduct(r.Context(), id, usecase.NewUpdateProductReq(req.Name, req.Price, req.Image))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор товара"
//	@Success		200	{object}	Envelope	"Товар удалён"
//	@Failure		400	{object}	Envelope	"Некорректный идентификатор"
//	@Failure		404	{object}	Envelope	"Товар не найден"
//	@Router			/api/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := p.catalogUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccessMessage(w, http.StatusOK, "Product deleted")
}
