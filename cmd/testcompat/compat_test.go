package testcompat

import (
	"context"
	"testing"
	"time"

	"github.com/eternalApril/moonray/client"
	"github.com/eternalApril/moonray/resp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverAddr = "127.0.0.1:6379"

// TestCompatibility cross-checks this client against go-redis on a live
// server: values written by one must read back identically through the
// other.
func TestCompatibility(t *testing.T) {
	conn, err := client.Dial(client.Options{
		Addr:        serverAddr,
		DialTimeout: time.Second,
		ReadTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Skipf("no server at %s: %v", serverAddr, err)
	}
	defer conn.Close() //nolint:errcheck

	rdb := redis.NewClient(&redis.Options{
		Addr: serverAddr,
	})
	defer rdb.Close() //nolint:errcheck

	ctx := context.Background()

	// write through moonray, read through go-redis
	val, err := client.Cmd("SET").Arg("compat:key").Arg("written-by-moonray").Execute(conn)
	require.NoError(t, err)
	assert.True(t, val.Equal(resp.MakeSimpleString("OK")), "got %+v", val)

	got, err := rdb.Get(ctx, "compat:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "written-by-moonray", got)

	// write through go-redis, read through moonray
	require.NoError(t, rdb.Set(ctx, "compat:key2", "written-by-go-redis", 0).Err())

	val, err = conn.Do("GET", "compat:key2")
	require.NoError(t, err)
	assert.True(t, val.Equal(resp.MakeBulkString("written-by-go-redis")), "got %+v", val)

	// integer replies
	require.NoError(t, rdb.Del(ctx, "compat:counter").Err())

	val, err = conn.Do("INCR", "compat:counter")
	require.NoError(t, err)
	assert.True(t, val.Equal(resp.MakeInteger(1)), "got %+v", val)

	// null replies
	require.NoError(t, rdb.Del(ctx, "compat:absent").Err())

	val, err = conn.Do("GET", "compat:absent")
	require.NoError(t, err)
	assert.True(t, val.IsNull, "got %+v", val)

	// array replies preserve order
	require.NoError(t, rdb.Del(ctx, "compat:list").Err())
	require.NoError(t, rdb.RPush(ctx, "compat:list", "a", "b", "c").Err())

	val, err = conn.Do("LRANGE", "compat:list", "0", "-1")
	require.NoError(t, err)
	want := resp.MakeArray([]resp.Value{
		resp.MakeBulkString("a"),
		resp.MakeBulkString("b"),
		resp.MakeBulkString("c"),
	})
	assert.True(t, val.Equal(want), "got %+v", val)
}
