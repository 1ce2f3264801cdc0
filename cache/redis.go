package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Compile-time interface check.
var _ Distributed = (*Redis)(nil)

// RedisServer is one host/port pair of a Redis deployment.
type RedisServer struct {
	Host string
	Port int
}

// Addr returns host:port.
func (s RedisServer) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RedisOptions selects a single-node or cluster deployment.
type RedisOptions struct {
	DB        int
	Servers   []RedisServer
	Password  string
	IsCluster bool
	TLS       *tls.Config
}

// Redis is the distributed cache layer on top of a go-redis client.
type Redis struct {
	client  redis.UniversalClient
	metrics *Metrics
}

// RedisOption configures the Redis cache.
type RedisOption func(*Redis)

// WithRedisMetrics records hits and misses of member-set reads.
func WithRedisMetrics(m *Metrics) RedisOption {
	return func(r *Redis) { r.metrics = m }
}

// NewRedis creates a client for opts. The client connects lazily; use Ping
// to verify connectivity.
func NewRedis(opts RedisOptions, ropts ...RedisOption) (*Redis, error) {
	if len(opts.Servers) == 0 {
		return nil, errors.New("cache: redis: at least one server is required")
	}
	var client redis.UniversalClient
	if opts.IsCluster {
		addrs := make([]string, len(opts.Servers))
		for i, s := range opts.Servers {
			addrs[i] = s.Addr()
		}
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:     addrs,
			Password:  opts.Password,
			TLSConfig: opts.TLS,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:      opts.Servers[0].Addr(),
			Password:  opts.Password,
			DB:        opts.DB,
			TLSConfig: opts.TLS,
		})
	}
	return NewRedisFromClient(client, ropts...), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Client returns the underlying go-redis client.
func (r *Redis) Client() redis.UniversalClient { return r.client }

// Get returns the string stored under key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		r.metrics.miss(LayerDistributed)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: redis get %q: %w", key, err)
	}
	r.metrics.hit(LayerDistributed)
	return v, true, nil
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set %q: %w", key, err)
	}
	r.metrics.set(LayerDistributed)
	return nil
}

// Delete removes keys.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: redis delete: %w", err)
	}
	return nil
}

// AddToSet adds members to the set under key.
func (r *Redis) AddToSet(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := r.client.SAdd(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("cache: redis sadd %q: %w", key, err)
	}
	return nil
}

// Members returns the members of the set under key; a missing key yields
// an empty slice.
func (r *Redis) Members(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: redis smembers %q: %w", key, err)
	}
	if len(members) == 0 {
		r.metrics.miss(LayerDistributed)
	} else {
		r.metrics.hit(LayerDistributed)
	}
	return members, nil
}

// Ping verifies the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections. Closing twice is not an error.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
