package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/internal/domain"
	"github.com/vitrine-shop/go-backend/internal/repository/redis/converter"
	"github.com/vitrine-shop/go-backend/pkg/clients"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/vitrine-shop/go-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// productsKey — ключ кэша всего списка товаров.
// Список невелик и инвалидируется целиком при любой мутации.
const productsKey = "products:all"

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает закэшированный список товаров.
// Промах кэша — (nil, nil); повреждённое значение удаляется и считается промахом.
func (c *CacheRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Client.Get(ctx, productsKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), productsKey).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // cache miss
	}

	return c.conv.ToArrEntity(models), nil
}

// SetProducts кэширует список товаров с заданным TTL.
// Решение, фатальна ли ошибка записи, принимает вызывающий код.
func (c *CacheRepo) SetProducts(ctx context.Context, products []domain.Product) error {
	models := c.conv.ToArrRedisModel(products)

	data, err := json.Marshal(models)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, productsKey, data, c.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Invalidate сбрасывает кэш списка товаров.
func (c *CacheRepo) Invalidate(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, productsKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
