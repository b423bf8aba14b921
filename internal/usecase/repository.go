package usecase

import (
	"context"

	"github.com/vitrine-shop/go-backend/internal/domain"
)

type ProductRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}
