package clients

import (
	"context"

	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoClient struct {
	Client *mongo.Client
	cfg    *cfg.MongoCfg
}

// NewMongoClient устанавливает соединение с MongoDB и проверяет его ping'ом.
func NewMongoClient(cfg *cfg.MongoCfg) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &MongoClient{Client: client, cfg: cfg}, nil
}

// Collection возвращает коллекцию товаров.
func (m *MongoClient) Collection() *mongo.Collection {
	return m.Client.Database(m.cfg.Database).Collection(m.cfg.Collection)
}

// Close закрывает соединение с MongoDB.
func (m *MongoClient) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
