package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, 12345)
	require.NoError(t, err)
	require.Equal(t, int64(12345), created.TelegramID)
	require.NotZero(t, created.ID)

	again, err := repo.GetOrCreate(ctx, 12345)
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID, "repeat contact must not create a second user")

	other, err := repo.GetOrCreate(ctx, 67890)
	require.NoError(t, err)
	require.NotEqual(t, created.ID, other.ID)
}
