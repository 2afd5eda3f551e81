package blob_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinefabric/byteconv-go"
	"github.com/machinefabric/byteconv-go/blob"
)

func ctx() context.Context { return context.Background() }

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func TestRedisKeyToBytes(t *testing.T) {
	client := newTestRedisClient(t)
	require.NoError(t, client.Set(ctx(), "greeting", []byte("hello from redis"), 0).Err())

	out, err := byteconv.Convert(blob.NewRedisKey(client, "greeting"), byteconv.KindBytes, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, "hello from redis", string(out.([]byte)))
}

func TestRedisKeyByteSinkWritesOnClose(t *testing.T) {
	client := newTestRedisClient(t)
	rk := blob.NewRedisKey(client, "written-key")

	_, err := rk.SendBytes([]byte("committed on close"), byteconv.NoOptions())
	require.NoError(t, err)
	require.NoError(t, rk.Close())

	got, err := client.Get(ctx(), "written-key").Bytes()
	require.NoError(t, err)
	assert.Equal(t, "committed on close", string(got))
}

func TestRedisKeyByteSourceSlicesView(t *testing.T) {
	client := newTestRedisClient(t)
	require.NoError(t, client.Set(ctx(), "chunked", []byte("0123456789"), 0).Err())

	rk := blob.NewRedisKey(client, "chunked")
	first, err := rk.TakeBytes(4, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, "0123", string(first))

	rest, err := rk.TakeBytes(100, byteconv.NoOptions())
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))
}
