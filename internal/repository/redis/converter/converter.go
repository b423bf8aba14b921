package converter

import "github.com/vitrine-shop/go-backend/internal/domain"

// ProductConverter преобразует сущности Product между domain и кэш-моделью Redis.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
	ToArrEntity(models []ProductRedisModel) []domain.Product
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return &productConverter{}
}

func (c *productConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Price:     entity.Price,
		Image:     entity.Image,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (c *productConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		Image:     model.Image,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c *productConverter) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}

func (c *productConverter) ToArrEntity(models []ProductRedisModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}
