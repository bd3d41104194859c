/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/go-stoabs"
	"github.com/nuts-foundation/go-stoabs/redis7"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/storage/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const lockAcquireTimeout = time.Second

var redisTLSModifier = func(conf *tls.Config) {
	// do nothing by default, used for testing
}

// redisPingAttempts is the number of times the connection to Redis is tested before giving up at startup.
var redisPingAttempts uint = 3

// RedisConfig specifies config for Redis databases.
type RedisConfig struct {
	Address  string              `koanf:"address"`
	Username string              `koanf:"username"`
	Password string              `koanf:"password"`
	Database string              `koanf:"database"`
	TLS      RedisTLSConfig      `koanf:"tls"`
	Sentinel RedisSentinelConfig `koanf:"sentinel"`
}

// RedisTLSConfig specifies properties for connecting to a Redis server over TLS.
type RedisTLSConfig struct {
	TrustStoreFile string `koanf:"truststorefile"`
}

// RedisSentinelConfig specifies properties for connecting to a Redis Sentinel cluster.
type RedisSentinelConfig struct {
	Master   string   `koanf:"master"`
	Nodes    []string `koanf:"nodes"`
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
}

// isConfigured returns true if config the indicates Redis support should be enabled.
func (r RedisConfig) isConfigured() bool {
	return len(r.Address) > 0
}

func (r RedisConfig) parse() (*redis.Options, error) {
	// Backwards compatibility: if not an address URL, assume simply TCP with host:port
	addr := r.Address
	if !isRedisURL(addr) {
		addr = "redis://" + addr
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}

	if len(r.Username) > 0 {
		opts.Username = r.Username
	}
	if len(r.Password) > 0 {
		opts.Password = r.Password
	}

	if len(r.TLS.TrustStoreFile) > 0 {
		if opts.TLSConfig == nil {
			return nil, errors.New("TLS configured but not connecting to a Redis TLS server")
		}
		trustStore, err := core.LoadTrustStore(r.TLS.TrustStoreFile)
		if err != nil {
			return nil, fmt.Errorf("unable to load truststore for Redis database: %w", err)
		}
		opts.TLSConfig.RootCAs = trustStore.CertPool
	}
	if opts.TLSConfig != nil {
		redisTLSModifier(opts.TLSConfig)
	}
	return opts, nil
}

func (r RedisSentinelConfig) enabled() bool {
	return r.Master != "" || len(r.Nodes) > 0
}

// parse builds redis.FailoverOptions from the given base options and the Sentinel-specific configuration.
func (r RedisSentinelConfig) parse(baseOpts redis.Options) (*redis.FailoverOptions, error) {
	if r.Master == "" {
		return nil, errors.New("master is not configured")
	}
	if len(r.Nodes) == 0 {
		return nil, errors.New("node addresses are not configured")
	}

	var tlsConfig *tls.Config
	if baseOpts.TLSConfig != nil {
		tlsConfig = baseOpts.TLSConfig.Clone()
		// sentinel clients connect to any of the nodes, so don't pin a single server name
		tlsConfig.ServerName = ""
	}

	return &redis.FailoverOptions{
		MasterName:       r.Master,
		SentinelAddrs:    r.Nodes,
		SentinelUsername: r.Username,
		SentinelPassword: r.Password,
		Username:         baseOpts.Username,
		Password:         baseOpts.Password,
		DB:               baseOpts.DB,
		DialTimeout:      baseOpts.DialTimeout,
		ReadTimeout:      baseOpts.ReadTimeout,
		WriteTimeout:     baseOpts.WriteTimeout,
		PoolSize:         baseOpts.PoolSize,
		TLSConfig:        tlsConfig,
	}, nil
}

// newRedisClient creates a Redis client (plain or Sentinel) from the given config.
func newRedisClient(config RedisConfig) (*redis.Client, error) {
	opts, err := config.parse()
	if err != nil {
		return nil, err
	}
	if config.Sentinel.enabled() {
		sentinelOpts, err := config.Sentinel.parse(*opts)
		if err != nil {
			return nil, fmt.Errorf("unable to configure Redis Sentinel client: %w", err)
		}
		return redis.NewFailoverClient(sentinelOpts), nil
	}
	return redis.NewClient(opts), nil
}

// pingRedis tests the connection to Redis, retrying a few times since Redis might still be starting.
func pingRedis(ctx context.Context, client *redis.Client) error {
	return retry.Do(func() error {
		return client.Ping(ctx).Err()
	},
		retry.Attempts(redisPingAttempts),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Logger().WithError(err).Warnf("Redis not reachable (attempt %d)", n+1)
		}),
	)
}

// createRedisStore wraps the client in a go-stoabs KVStore. All keys are prefixed with the database name (if set) and the store name.
func createRedisStore(databaseName string, storeName string, client *redis.Client) (stoabs.KVStore, error) {
	var prefixParts []string
	if len(databaseName) > 0 {
		prefixParts = append(prefixParts, databaseName)
	}
	prefixParts = append(prefixParts, storeName)
	prefix := strings.ToLower(strings.Join(prefixParts, "_"))
	log.Logger().
		WithField(core.LogFieldStore, prefix).
		Debug("Creating Redis store")
	return redis7.Wrap(prefix, client, stoabs.WithLockAcquireTimeout(lockAcquireTimeout))
}

func isRedisURL(address string) bool {
	return strings.HasPrefix(address, "redis://") ||
		strings.HasPrefix(address, "rediss://") ||
		strings.HasPrefix(address, "unix://")
}

// redisLogWriter is a wrapper to redirect redis log to our logger
type redisLogWriter struct {
	logger *logrus.Entry
}

// Printf expects entries in the form:
// redis: sentinel.go:628: sentinel: new master="mymaster" addr="172.20.0.4:6379"
// All logs are written as Warning
func (t redisLogWriter) Printf(_ context.Context, format string, v ...interface{}) {
	t.logger.Warnf(format, v...)
}
