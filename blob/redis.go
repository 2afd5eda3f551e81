package blob

import (
	"bytes"
	"context"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/machinefabric/byteconv-go"
)

// RedisKey is the RedisKey Kind: a client+key addressed value in a Redis
// (or Redis-protocol-compatible) store, via github.com/redis/go-redis/v9
// — the same client the wider corpus uses for its own cache layer.
type RedisKey struct {
	Client *redis.Client
	Key    string

	reader  *bytes.Reader
	pending *redisPendingSet
}

// NewRedisKey names a key without fetching it.
func NewRedisKey(client *redis.Client, key string) *RedisKey {
	return &RedisKey{Client: client, Key: key}
}

var KindRedisKey = byteconv.Concrete("redis-key")

func init() {
	byteconv.RegisterKindOf(func(v any) (byteconv.Kind, bool) {
		if _, ok := v.(*RedisKey); ok {
			return KindRedisKey, true
		}
		return byteconv.Kind{}, false
	})
	byteconv.RegisterCapability(byteconv.CapByteSource, KindRedisKey)
	byteconv.RegisterCapability(byteconv.CapByteSink, KindRedisKey)
	byteconv.RegisterCapability(byteconv.CapCloseable, KindRedisKey)

	byteconv.RegisterConversion(KindRedisKey, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		rk := v.(*RedisKey)
		return rk.Client.Get(context.Background(), rk.Key).Bytes()
	})
}

// TakeBytes implements byteconv.ByteSource by fetching the whole value on
// first pull (Redis GET has no partial-read API) and then handing it out
// in chunks of up to n bytes, each copied out of the fetched value.
func (r *RedisKey) TakeBytes(n int, _ byteconv.Options) ([]byte, error) {
	if r.reader == nil {
		data, err := r.Client.Get(context.Background(), r.Key).Bytes()
		if err != nil {
			return nil, err
		}
		r.reader = bytes.NewReader(data)
	}
	if r.reader.Len() == 0 {
		return nil, io.EOF
	}
	buf := make([]byte, n)
	k, _ := r.reader.Read(buf)
	return buf[:k], nil
}

// redisPendingSet buffers SendBytes calls, written to Redis as a single
// SET on Close — Redis has an APPEND command, but this module writes
// whole values on close to match the same buffer-then-commit discipline
// as S3Object rather than mixing two different partial-write semantics
// for the same capability.
type redisPendingSet struct {
	buf bytes.Buffer
}

func (r *RedisKey) SendBytes(data []byte, _ byteconv.Options) (int, error) {
	if r.pending == nil {
		r.pending = &redisPendingSet{}
	}
	return r.pending.buf.Write(data)
}

func (r *RedisKey) Close() error {
	if r.pending == nil {
		return nil
	}
	data := r.pending.buf.Bytes()
	r.pending = nil
	return r.Client.Set(context.Background(), r.Key, data, 0).Err()
}
