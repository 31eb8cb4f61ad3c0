package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "gamebazaar/internal/adapter/repository"
	"gamebazaar/internal/domain/entity"
)

func newRepos() Repositories {
	return Repositories{
		Users:    adapter.NewMemoryUserRepository(),
		Listings: adapter.NewMemoryListingRepository(),
		Boosting: adapter.NewMemoryBoostingRepository(),
		Chats:    adapter.NewMemoryChatRepository(),
	}
}

func TestDefaultSeedApplies(t *testing.T) {
	data, err := Load("")
	require.NoError(t, err)

	repos := newRepos()
	ctx := context.Background()
	require.NoError(t, data.Apply(ctx, repos))

	listing, err := repos.Listings.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 850.0, listing.Price)
	assert.Equal(t, "RUB", listing.Currency)
	assert.Equal(t, "u2", listing.Seller.ID)
	assert.Equal(t, "Gordunni", listing.Details[entity.DetailServer])

	admin, err := repos.Users.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	chats, err := repos.Chats.ListByUserID(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Len(t, chats[0].Messages, 2)

	reqs, _, err := repos.Boosting.List(ctx, entity.BoostingStatusOpen, 10, 0)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - id: x1\n    username: solo\n    role: seller\n"), 0o600))

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data.Users, 1)
	assert.Equal(t, "solo", data.Users[0].Username)
}

func TestApplyRejectsUnknownSeller(t *testing.T) {
	data, err := Parse([]byte("listings:\n  - id: l9\n    seller_id: ghost\n"))
	require.NoError(t, err)

	assert.Error(t, data.Apply(context.Background(), newRepos()))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
