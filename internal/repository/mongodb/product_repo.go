package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/vitrine-shop/go-backend/internal/domain"
	"github.com/vitrine-shop/go-backend/internal/repository/mongodb/converter"
	"github.com/vitrine-shop/go-backend/internal/usecase"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepo реализует репозиторий товаров поверх MongoDB.
// Атомарность обеспечивается самим хранилищем на уровне документа,
// дополнительных блокировок нет.
type ProductRepo struct {
	coll *mongo.Collection
	conv converter.ProductConverter
}

func NewProductRepo(coll *mongo.Collection, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		coll: coll,
		conv: conv,
	}
}

// GetAll возвращает все товары каталога.
func (p *ProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	cursor, err := p.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer cursor.Close(ctx)

	var models []converter.ProductModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetByID возвращает товар по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	objectID, err := p.parseID(id)
	if err != nil {
		return nil, err
	}

	var model converter.ProductModel
	if err := p.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Insert сохраняет новый товар и возвращает его с назначенным идентификатором.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	model.CreatedAt = time.Now().UTC()

	res, err := p.coll.InsertOne(ctx, model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInternalServerError)
	}

	model.ID = objectID
	return p.conv.ToEntity(model), nil
}

// Update применяет частичное обновление и возвращает запись после изменения.
func (p *ProductRepo) Update(ctx context.Context, id string, patch *usecase.ProductPatch) (*domain.Product, error) {
	objectID, err := p.parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	var model converter.ProductModel
	err = p.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete удаляет товар. Отсутствие записи — отдельная ошибка, не общий сбой.
func (p *ProductRepo) Delete(ctx context.Context, id string) error {
	objectID, err := p.parseID(id)
	if err != nil {
		return err
	}

	res, err := p.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.DeletedCount == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// parseID отклоняет некорректный идентификатор до обращения к хранилищу.
func (p *ProductRepo) parseID(id string) (primitive.ObjectID, error) {
	objectID, err := converter.ParseID(id)
	if err != nil {
		return primitive.NilObjectID, e.Wrap(id, e.ErrInvalidProductID)
	}

	return objectID, nil
}
