package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultPrefix = "interview_scheduler:availability"
	DefaultTTL    = 5 * time.Minute
)

// Config параметры подключения к redis
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient создаёт клиента и проверяет соединение
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Availability хранит результаты пересечения слотов в redis.
// Все записи живут под текущей версией; любая запись в слоты делает INCR версии,
// и старые значения просто перестают читаться и истекают по TTL.
type Availability struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewAvailability(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *Availability {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Availability{
		client: client,
		prefix: DefaultPrefix,
		ttl:    ttl,
		logger: logger,
	}
}

// Get читает значение под текущей версией. token возвращается и при промахе:
// по нему Set запишет результат в ту версию, которая была видна при чтении.
func (a *Availability) Get(ctx context.Context, key string) ([]string, string, bool, error) {
	version, err := a.client.Get(ctx, a.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, "", false, fmt.Errorf("get cache version: %w", err)
	}

	token := a.entryKey(version, key)

	raw, err := a.client.Get(ctx, token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, token, false, nil
	}
	if err != nil {
		return nil, "", false, fmt.Errorf("get cache entry: %w", err)
	}

	var hours []string
	if err := json.Unmarshal(raw, &hours); err != nil {
		a.logger.Warn("Dropping malformed availability cache entry", zap.String("key", token), zap.Error(err))
		return nil, token, false, nil
	}
	if hours == nil {
		hours = []string{}
	}

	return hours, token, true, nil
}

func (a *Availability) Set(ctx context.Context, token string, hours []string) error {
	if !strings.HasPrefix(token, a.prefix+":v") {
		return fmt.Errorf("set cache entry: foreign token %q", token)
	}

	raw, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := a.client.Set(ctx, token, raw, a.ttl).Err(); err != nil {
		return fmt.Errorf("set cache entry: %w", err)
	}
	return nil
}

// Invalidate сдвигает версию, после чего все прежние записи недоступны
func (a *Availability) Invalidate(ctx context.Context) error {
	version, err := a.client.Incr(ctx, a.versionKey()).Result()
	if err != nil {
		return fmt.Errorf("bump cache version: %w", err)
	}

	a.logger.Debug("Availability cache invalidated", zap.Int64("version", version))
	return nil
}

func (a *Availability) versionKey() string {
	return a.prefix + ":version"
}

func (a *Availability) entryKey(version int64, key string) string {
	return a.prefix + ":v" + strconv.FormatInt(version, 10) + ":" + key
}
