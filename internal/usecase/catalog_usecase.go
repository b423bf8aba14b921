package usecase

import (
	"context"
	"time"

	"github.com/vitrine-shop/go-backend/internal/domain"
	"github.com/vitrine-shop/go-backend/internal/validation"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/vitrine-shop/go-backend/pkg/logger"
)

// CatalogUseCase реализует бизнес-логику каталога товаров.
type CatalogUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	producer    ChangeEventProducer
	logger      logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	producer ChangeEventProducer,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		producer:    producer,
		logger:      logger,
	}
}

// ListProducts возвращает все товары каталога.
// Промах или сбой кэша не ошибка: список читается из хранилища,
// а кэш наполняется в фоне.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	if cached, err := c.cacheRepo.GetProducts(ctx); err == nil && cached != nil {
		return cached, nil
	}

	products, err := c.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое наполнение кэша
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProducts(bgCtx, products); err != nil {
			c.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
		}
	}()

	return products, nil
}

// CreateProduct валидирует payload и сохраняет новый товар.
// Любая ошибка валидации возвращается до обращения к хранилищу.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	product, err := validation.ValidateCreate(validation.CreateInput{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := c.productRepo.Insert(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCache(ctx, op)
	c.publishChange(ctx, op, NewChangeEvent(ChangeOpCreated, created.ID, created))

	return created, nil
}

// UpdateProduct применяет частичное обновление: меняются только переданные поля.
// Некорректный идентификатор отклоняется до запроса к хранилищу,
// отсутствующий товар — отдельная ошибка, а не общий сбой.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, id string, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	normalized, err := validation.ValidateUpdate(validation.UpdateInput{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	patch := NewProductPatch(normalized.Name, normalized.Price, normalized.Image)

	// Пустой patch не трогает запись
	if patch.IsEmpty() {
		product, err := c.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		return product, nil
	}

	updated, err := c.productRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCache(ctx, op)
	c.publishChange(ctx, op, NewChangeEvent(ChangeOpUpdated, updated.ID, updated))

	return updated, nil
}

// DeleteProduct удаляет товар по идентификатору.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogUseCase.DeleteProduct"

	if err := c.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	c.invalidateCache(ctx, op)
	c.publishChange(ctx, op, NewChangeEvent(ChangeOpDeleted, id, nil))

	return nil
}

// invalidateCache сбрасывает кэш списка товаров, логируя сбой как предупреждение.
func (c *CatalogUseCase) invalidateCache(ctx context.Context, op string) {
	if err := c.cacheRepo.Invalidate(ctx); err != nil {
		c.logger.Warnf("Failed to invalidate products cache: %v", e.Wrap(op, err))
	}
}

// publishChange отправляет событие изменения каталога.
// Сбой доставки события не влияет на результат операции.
func (c *CatalogUseCase) publishChange(ctx context.Context, op string, event *ChangeEvent) {
	if c.producer == nil {
		return
	}

	if err := c.producer.PublishChange(ctx, event); err != nil {
		c.logger.Warnf("Failed to publish change event: %v", e.Wrap(op, err))
	}
}
