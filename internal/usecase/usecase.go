package usecase

import (
	"context"

	"github.com/vitrine-shop/go-backend/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
