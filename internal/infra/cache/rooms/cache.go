package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const defaultKeyPrefix = "rooms:"

// Cache справочник комнат с read-through кэшем в Redis
// Ошибки Redis не ломают чтение: запрос уходит в источник
type Cache struct {
	client    RedisClient
	source    Source
	ttl       time.Duration
	keyPrefix string
	log       Logger
}

// NewCache создает новый экземпляр кэша комнат
func NewCache(client RedisClient, source Source, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		client:    client,
		source:    source,
		ttl:       ttl,
		keyPrefix: defaultKeyPrefix,
		log:       log,
	}
}

func (c *Cache) allKey() string {
	return c.keyPrefix + "all"
}

func (c *Cache) categoryKey(category domain.RoomCategory) string {
	return fmt.Sprintf("%scategory:%s", c.keyPrefix, category)
}

func (c *Cache) roomKey(id int64) string {
	return fmt.Sprintf("%sid:%d", c.keyPrefix, id)
}

// GetByCategory возвращает комнаты категории в порядке возрастания ID
func (c *Cache) GetByCategory(ctx context.Context, category domain.RoomCategory) ([]*domain.Room, error) {
	return c.readThrough(ctx, c.categoryKey(category), func() ([]*domain.Room, error) {
		return c.source.GetByCategory(ctx, category)
	})
}

// List возвращает все комнаты
func (c *Cache) List(ctx context.Context) ([]*domain.Room, error) {
	return c.readThrough(ctx, c.allKey(), func() ([]*domain.Room, error) {
		return c.source.List(ctx)
	})
}

// GetByID получает комнату по ID
func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	rooms, err := c.readThrough(ctx, c.roomKey(id), func() ([]*domain.Room, error) {
		room, err := c.source.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return []*domain.Room{room}, nil
	})
	if err != nil {
		return nil, err
	}
	return rooms[0], nil
}

// Invalidate удаляет из кэша списки и конкретную комнату
// Вызывается после изменения справочника
func (c *Cache) Invalidate(ctx context.Context, roomIDs ...int64) {
	keys := []string{c.allKey()}
	for _, category := range domain.Categories {
		keys = append(keys, c.categoryKey(category))
	}
	for _, id := range roomIDs {
		keys = append(keys, c.roomKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("RoomCache: failed to invalidate keys %v: %v", keys, err)
	}
}

func (c *Cache) readThrough(ctx context.Context, key string, load func() ([]*domain.Room, error)) ([]*domain.Room, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []cachedRoom
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			return fromCached(cached), nil
		}
		c.log.Warn("RoomCache: corrupted entry %s, reloading", key)
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.log.Warn("RoomCache: get %s failed, falling back to storage: %v", key, err)
	}

	rooms, err := load()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(toCached(rooms))
	if err != nil {
		c.log.Warn("RoomCache: failed to encode %s: %v", key, err)
		return rooms, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("RoomCache: set %s failed: %v", key, err)
	}

	return rooms, nil
}
