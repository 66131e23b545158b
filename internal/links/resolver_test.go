package links

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeLocator struct{}

func (fakeLocator) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

// fakeCache is an in-memory stand-in for the Redis layer.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(key string, dest interface{}) error {
	raw, ok := f.entries[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(keys ...string) error {
	for _, k := range keys {
		delete(f.entries, k)
	}
	return nil
}

func TestResolvePublicAnonymous(t *testing.T) {
	reg := NewRegistry(setupDB(t))
	res := NewResolver(reg, fakeLocator{})
	ctx := context.Background()

	draft := draftFor("res_owner1")
	draft.IsPublic = true
	rec, err := reg.Register(ctx, draft)
	assert.NoError(t, err)

	out, err := res.Resolve(ctx, rec.ShortCode, Requester{})
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+rec.StorageKey, out.Location)
	assert.Equal(t, int64(1), out.Record.ViewCount)
}

func TestResolveUnknownCode(t *testing.T) {
	reg := NewRegistry(setupDB(t))
	res := NewResolver(reg, fakeLocator{})

	_, err := res.Resolve(context.Background(), "unknown", Requester{})
	assert.ErrorIs(t, err, ErrNotFound)
}

// Private upload: anonymous and stranger resolves are denied, the owner
// sees the counter advance 1, 2.
func TestResolvePrivateScenario(t *testing.T) {
	reg := NewRegistry(setupDB(t))
	res := NewResolver(reg, fakeLocator{})
	ctx := context.Background()

	rec, err := reg.Register(ctx, draftFor("res_owner2")) // private by default
	assert.NoError(t, err)

	_, err = res.Resolve(ctx, rec.ShortCode, Requester{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = res.Resolve(ctx, rec.ShortCode, Requester{ID: "someone_else"})
	assert.ErrorIs(t, err, ErrForbidden)

	// Denied resolves must not count views.
	got, err := reg.Lookup(ctx, rec.ShortCode)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), got.ViewCount)

	out, err := res.Resolve(ctx, rec.ShortCode, Requester{ID: "res_owner2"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Record.ViewCount)

	out, err = res.Resolve(ctx, rec.ShortCode, Requester{ID: "res_owner2"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Record.ViewCount)
}

func TestResolveAdminSeesPrivate(t *testing.T) {
	reg := NewRegistry(setupDB(t))
	res := NewResolver(reg, fakeLocator{})
	ctx := context.Background()

	rec, err := reg.Register(ctx, draftFor("res_owner3"))
	assert.NoError(t, err)

	out, err := res.Resolve(ctx, rec.ShortCode, Requester{ID: "admin1", Role: models.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Record.ViewCount)
}

// Increments go through the store's in-place update, so resolvers
// holding independently fetched (stale) copies of the row never lose
// updates.
func TestResolveNoLostUpdates(t *testing.T) {
	db := setupDB(t)
	regA := NewRegistry(db)
	regB := NewRegistry(db)
	resA := NewResolver(regA, fakeLocator{})
	resB := NewResolver(regB, fakeLocator{})
	ctx := context.Background()

	draft := draftFor("res_owner4")
	draft.IsPublic = true
	rec, err := regA.Register(ctx, draft)
	assert.NoError(t, err)

	const n = 10
	for i := 0; i < n; i++ {
		r := resA
		if i%2 == 1 {
			r = resB
		}
		_, err := r.Resolve(ctx, rec.ShortCode, Requester{})
		assert.NoError(t, err)
	}

	got, err := regA.Lookup(ctx, rec.ShortCode)
	assert.NoError(t, err)
	assert.Equal(t, int64(n), got.ViewCount)
}

// A cached lookup still counts views in the store, and visibility
// changes invalidate the cached record.
func TestResolveWithCache(t *testing.T) {
	cache := newFakeCache()
	reg := NewRegistry(setupDB(t)).WithCache(cache)
	res := NewResolver(reg, fakeLocator{})
	ctx := context.Background()

	draft := draftFor("res_owner5")
	draft.IsPublic = true
	rec, err := reg.Register(ctx, draft)
	assert.NoError(t, err)

	out, err := res.Resolve(ctx, rec.ShortCode, Requester{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Record.ViewCount)

	// Second resolve is served from cache but the counter still moves.
	out, err = res.Resolve(ctx, rec.ShortCode, Requester{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Record.ViewCount)

	// Going private evicts the cached copy; anonymous resolves stop.
	_, err = reg.SetVisibility(ctx, rec.ID, "res_owner5", false)
	assert.NoError(t, err)

	_, err = res.Resolve(ctx, rec.ShortCode, Requester{})
	assert.ErrorIs(t, err, ErrForbidden)
}
