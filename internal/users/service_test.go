package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpsertFromAuthValidatesIdentity(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	err := svc.UpsertFromAuth(ctx, User{ID: "", Email: "a@example.com"})
	require.Error(t, err)

	err = svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: ""})
	require.Error(t, err)

	err = svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "a@example.com", Name: "Ada"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "google:1")
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Name)
}

func TestUpsertKeepsCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.UpsertFromAuth(ctx, User{ID: "google:2", Email: "b@example.com"}))
	first, err := svc.GetByID(ctx, "google:2")
	require.NoError(t, err)

	require.NoError(t, svc.UpsertFromAuth(ctx, User{ID: "google:2", Email: "b2@example.com"}))
	second, err := svc.GetByID(ctx, "google:2")
	require.NoError(t, err)

	require.Equal(t, first.CreatedAt, second.CreatedAt)
	require.Equal(t, "b2@example.com", second.Email)
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
