package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calinea/internal/testutils"
	"github.com/aretw0/calinea/pkg/adapters/redis"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
	contract "github.com/aretw0/calinea/pkg/ports/tests"
)

func TestRedisStore_Contract(t *testing.T) {
	_, client := testutils.SetupRedis(t)
	contract.RunComponentStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Contract_CBOR(t *testing.T) {
	_, client := testutils.SetupRedis(t)
	contract.RunComponentStoreContract(t, redis.NewFromClient(client, redis.WithEncoding(redis.EncodingCBOR)))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := testutils.SetupRedis(t)

	now := time.Unix(1_700_000_000, 0)
	store := redis.NewFromClient(client,
		redis.WithTTL(time.Second),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "motd", component.Text("Welcome back")))
	require.NoError(t, store.Save(ctx, "other", component.Text("still here")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"motd", "other"}, ids)

	// Key expiration happens in redis; the index is trimmed against the clock.
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, "motd")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_NoTTL_NeverTrimmed(t *testing.T) {
	_, client := testutils.SetupRedis(t)

	now := time.Unix(1_700_000_000, 0)
	store := redis.NewFromClient(client, redis.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "forever", component.Text("x")))
	now = now.Add(24 * time.Hour)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forever"}, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := testutils.SetupRedis(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "greeting", component.Text("hi")))

	assert.True(t, mr.Exists("custom:app:item:greeting"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "greeting")
}

func TestRedisStore_Encodings(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	ctx := context.Background()
	tree := component.Text("hi", component.NewStyle(component.Red))

	jsonStore := redis.NewFromClient(client, redis.WithPrefix("j:"))
	require.NoError(t, jsonStore.Save(ctx, "a", tree))
	raw, err := mr.Get("j:item:a")
	require.NoError(t, err)
	assert.Contains(t, raw, `"hi"`)

	cborStore := redis.NewFromClient(client, redis.WithPrefix("c:"), redis.WithEncoding(redis.EncodingCBOR))
	require.NoError(t, cborStore.Save(ctx, "a", tree))
	raw, err = mr.Get("c:item:a")
	require.NoError(t, err)
	assert.NotEqual(t, '{', rune(raw[0]))

	loaded, err := cborStore.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, tree.Equal(loaded))
}

func TestRedisStore_CorruptData(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"item:broken", "{not json"))
	_, err := store.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNotFound)
}

func TestRedisStore_IndexIDIsOrdinary(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", component.Text("first")))
	require.NoError(t, store.Save(ctx, "index", component.Text("second")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "index"}, ids)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.True(t, component.Text("second").Equal(loaded))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"item:index"))

	require.NoError(t, store.Delete(ctx, "index"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}

func TestParseEncoding(t *testing.T) {
	e, err := redis.ParseEncoding("cbor")
	require.NoError(t, err)
	assert.Equal(t, redis.EncodingCBOR, e)

	_, err = redis.ParseEncoding("xml")
	assert.Error(t, err)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := redis.New("not a url")
	assert.Error(t, err)
}
