package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/adiprakosa/kasirpos/config"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// RevokeToken blacklists a token until its natural expiry. Logged-out
// tokens keep failing authentication even though the signature would
// still verify.
func RevokeToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		// Redis is optional; without it logout falls back to client-side
		// token disposal only.
		return nil
	}

	key := "revoked:" + token
	if err := client.Set(ctx, key, "1", expiry).Err(); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}

	logger.Debug("Token revoked", map[string]interface{}{
		"expiry": expiry.String(),
	})
	return nil
}

// IsTokenRevoked reports whether a token was blacklisted by a logout.
func IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}

	_, err := client.Get(ctx, "revoked:"+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token revocation", err)
		return false, err
	}
	return true, nil
}
