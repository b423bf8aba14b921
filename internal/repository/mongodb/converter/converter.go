package converter

import (
	"github.com/vitrine-shop/go-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductConverter преобразует сущности Product между domain и моделью MongoDB.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return &productConverter{}
}

// ToModel не переносит идентификатор: его назначает хранилище.
func (c *productConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		Name:      entity.Name,
		Price:     entity.Price,
		Image:     entity.Image,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (c *productConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID.Hex(),
		Name:      model.Name,
		Price:     model.Price,
		Image:     model.Image,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c *productConverter) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// ParseID проверяет, что строка — корректный hex-идентификатор документа.
func ParseID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
