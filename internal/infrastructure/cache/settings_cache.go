// Package cache antepone Redis a la lectura de configuración de criticidad:
// la clasificación la consulta en cada recálculo y cambia muy poco.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
	"github.com/jhoicas/materiales-api/pkg/config"
)

const (
	settingsKey        = "criticality:settings"
	defaultSettingsTTL = 5 * time.Minute
)

// SettingsProvider entrega la configuración vigente. La implementación Redis
// cachea con TTL; la passthrough lee siempre del repositorio.
type SettingsProvider interface {
	Get(ctx context.Context) (*entity.CriticalitySettings, error)
	Invalidate(ctx context.Context) error
}

// NewSettingsProvider construye el provider según configuración: caché
// deshabilitada degrada a passthrough directo al repositorio.
func NewSettingsProvider(cfg config.CacheConfig, source repository.SettingsRepository) (SettingsProvider, error) {
	if !cfg.Enabled {
		return &passthroughSettings{source: source}, nil
	}
	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.SettingsTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSettingsTTL
	}
	return &redisSettings{client: client, ttl: ttl, source: source}, nil
}

type redisSettings struct {
	client *redis.Client
	ttl    time.Duration
	source repository.SettingsRepository
}

// Get intenta la caché y cae al repositorio en miss o error de Redis:
// una caché caída nunca bloquea la clasificación.
func (c *redisSettings) Get(ctx context.Context) (*entity.CriticalitySettings, error) {
	payload, err := c.client.Get(ctx, settingsKey).Bytes()
	if err == nil {
		var s entity.CriticalitySettings
		if err := json.Unmarshal(payload, &s); err == nil {
			return &s, nil
		}
		// Payload corrupto: invalidar y releer de la fuente.
		_ = c.client.Del(ctx, settingsKey).Err()
	} else if !errors.Is(err, redis.Nil) {
		// Redis caído: seguir con la fuente.
		return c.source.Get()
	}

	s, err := c.source.Get()
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(s); err == nil {
		_ = c.client.Set(ctx, settingsKey, payload, c.ttl).Err()
	}
	return s, nil
}

// Invalidate borra la entrada cacheada (tras ediciones de configuración).
func (c *redisSettings) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("invalidate settings cache: %w", err)
	}
	return nil
}

type passthroughSettings struct {
	source repository.SettingsRepository
}

func (p *passthroughSettings) Get(ctx context.Context) (*entity.CriticalitySettings, error) {
	return p.source.Get()
}

func (p *passthroughSettings) Invalidate(ctx context.Context) error { return nil }

func newRedisClient(cfg config.CacheConfig) (*redis.Client, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url inválida: %w", err)
		}
		return opt, nil
	}
	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
