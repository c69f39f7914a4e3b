// Package loader replays decoded RDB records into a live Redis or
// Dragonfly server.
package loader

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"rdbsnap/internal/rdb"
)

// Loader implements rdb.Formatter by translating every event into a
// Redis command, batched through a pipeline and throttled by a
// golang.org/x/time/rate limiter.
type Loader struct {
	client    *redis.Client
	ctx       context.Context
	pipe      redis.Pipeliner
	batchSize int
	pending   int
	limiter   *rate.Limiter

	// containerExpiry holds the pending expiry for the container record
	// currently open between a Start* and its matching End* call; RPUSH/
	// SADD/HSET/ZADD have no inline expiry argument the way SET does.
	containerExpiry *int64
}

// Config names the target and the throughput cap.
type Config struct {
	Addr         string
	Password     string
	TLS          bool
	OpsPerSecond float64 // 0 means unlimited
	BatchSize    int
}

// New connects to the target and returns a ready Loader. Connectivity is
// verified with a Ping before any records are accepted.
func New(ctx context.Context, cfg Config) (*Loader, error) {
	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("loader: connect to %s: %w", cfg.Addr, err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.OpsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.OpsPerSecond), batchSize)
	}

	return &Loader{
		client:    client,
		ctx:       ctx,
		pipe:      client.Pipeline(),
		batchSize: batchSize,
		limiter:   limiter,
	}, nil
}

// Close flushes any buffered commands and closes the connection.
func (l *Loader) Close() error {
	if err := l.flush(); err != nil {
		l.client.Close()
		return err
	}
	return l.client.Close()
}

func (l *Loader) queue(args ...interface{}) error {
	l.pipe.Do(l.ctx, args...)
	l.pending++
	if l.pending >= l.batchSize {
		return l.flush()
	}
	return nil
}

func (l *Loader) flush() error {
	if l.pending == 0 {
		return nil
	}
	if l.limiter.Limit() != rate.Inf {
		if err := l.limiter.WaitN(l.ctx, l.pending); err != nil {
			return fmt.Errorf("loader: rate limiter: %w", err)
		}
	}
	if _, err := l.pipe.Exec(l.ctx); err != nil && err != redis.Nil {
		return fmt.Errorf("loader: pipeline exec: %w", err)
	}
	l.pending = 0
	return nil
}

func expireArgs(expiry *int64) []interface{} {
	if expiry == nil {
		return nil
	}
	return []interface{}{"PXAT", *expiry}
}

func (l *Loader) StartRDB() error { return nil }
func (l *Loader) EndRDB() error   { return l.flush() }

func (l *Loader) StartDatabase(db int) error { return l.queue("SELECT", db) }
func (l *Loader) EndDatabase(db int) error   { return l.flush() }

func (l *Loader) Checksum(b []byte) error                     { return nil }
func (l *Loader) ResizeDB(mainSize, expiresSize uint64) error { return nil }
func (l *Loader) AuxField(key, value []byte) error            { return nil }

func (l *Loader) Set(key, value []byte, expiry *int64) error {
	args := append([]interface{}{"SET", key, value}, expireArgs(expiry)...)
	return l.queue(args...)
}

func (l *Loader) StartList(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	l.containerExpiry = expiry
	return nil
}
func (l *Loader) ListElement(key, value []byte) error {
	return l.queue("RPUSH", key, value)
}
func (l *Loader) EndList(key []byte) error { return l.applyContainerExpiry(key) }

func (l *Loader) StartSet(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	l.containerExpiry = expiry
	return nil
}
func (l *Loader) SetElement(key, value []byte) error {
	return l.queue("SADD", key, value)
}
func (l *Loader) EndSet(key []byte) error { return l.applyContainerExpiry(key) }

func (l *Loader) StartHash(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	l.containerExpiry = expiry
	return nil
}
func (l *Loader) HashElement(key, field, value []byte) error {
	return l.queue("HSET", key, field, value)
}
func (l *Loader) EndHash(key []byte) error { return l.applyContainerExpiry(key) }

func (l *Loader) StartSortedSet(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	l.containerExpiry = expiry
	return nil
}
func (l *Loader) SortedSetElement(key []byte, score float64, value []byte) error {
	return l.queue("ZADD", key, score, value)
}
func (l *Loader) EndSortedSet(key []byte) error { return l.applyContainerExpiry(key) }

func (l *Loader) applyContainerExpiry(key []byte) error {
	expiry := l.containerExpiry
	l.containerExpiry = nil
	if expiry == nil {
		return nil
	}
	return l.queue("PEXPIREAT", key, *expiry)
}

var _ rdb.Formatter = (*Loader)(nil)
