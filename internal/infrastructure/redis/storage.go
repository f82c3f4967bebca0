// Package redis implementa fiber.Storage sobre Redis para compartir los contadores del
// rate limiter entre instancias.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Proyectos-api/pkg/config"
)

var _ fiber.Storage = (*Storage)(nil)

// opTimeout límite de cada operación; el limiter no acepta context.
const opTimeout = 2 * time.Second

// Storage guarda cada clave con prefix delante.
type Storage struct {
	rdb    *goredis.Client
	prefix string
}

// New conecta con Redis y verifica la conexión con PING.
func New(cfg config.RedisConfig) (*Storage, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewWithClient(rdb, "ratelimit:"), nil
}

// NewWithClient usa un cliente ya construido.
func NewWithClient(rdb *goredis.Client, prefix string) *Storage {
	return &Storage{rdb: rdb, prefix: prefix}
}

// Get devuelve (nil, nil) si la clave no existe.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set guarda val; exp 0 significa sin expiración.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.rdb.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete elimina la clave.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// Reset elimina solo las claves con el prefijo propio.
func (s *Storage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*opTimeout)
	defer cancel()
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close cierra el cliente.
func (s *Storage) Close() error {
	return s.rdb.Close()
}
