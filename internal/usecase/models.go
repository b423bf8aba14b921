package usecase

import "github.com/vitrine-shop/go-backend/internal/domain"

// CATALOG USECASE

// CreateProductReq — запрос на создание товара.
type CreateProductReq struct {
	Name  string
	Price string
	Image string
}

// UpdateProductReq — частичное обновление товара. nil означает «поле не передано».
type UpdateProductReq struct {
	Name  *string
	Price *string
	Image *string
}

// ProductPatch — набор полей для частичного обновления в хранилище.
// Содержит только уже нормализованные значения.
type ProductPatch struct {
	Name  *string
	Price *string
	Image *string
}

// IsEmpty сообщает, что ни одно поле не передано.
func (p *ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil
}

// INFRASTRUCTURE

// ChangeOp — тип изменения товара в каталоге.
type ChangeOp string

const (
	ChangeOpCreated ChangeOp = "created"
	ChangeOpUpdated ChangeOp = "updated"
	ChangeOpDeleted ChangeOp = "deleted"
)

// ChangeEvent — событие изменения каталога для внешних потребителей.
type ChangeEvent struct {
	Op        ChangeOp
	ProductID string
	Product   *domain.Product // nil для ChangeOpDeleted
}

// MAPPERS

func NewCreateProductReq(name string, price string, image string) *CreateProductReq {
	return &CreateProductReq{
		Name:  name,
		Price: price,
		Image: image,
	}
}

func NewUpdateProductReq(name *string, price *string, image *string) *UpdateProductReq {
	return &UpdateProductReq{
		Name:  name,
		Price: price,
		Image: image,
	}
}

func NewProductPatch(name *string, price *string, image *string) *ProductPatch {
	return &ProductPatch{
		Name:  name,
		Price: price,
		Image: image,
	}
}

func NewChangeEvent(op ChangeOp, productID string, product *domain.Product) *ChangeEvent {
	return &ChangeEvent{
		Op:        op,
		ProductID: productID,
		Product:   product,
	}
}
