package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-reviews/internal/dto/request"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetProfile(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, "alice")

	service := NewUserService(store.repos().User, zap.NewNop())

	resp, err := service.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	_, err = service.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, "alice")

	service := NewUserService(store.repos().User, zap.NewNop())

	first := "Alice"
	email := "alice.new@example.com"
	resp, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		FirstName: &first,
		Email:     &email,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FirstName)
	assert.Equal(t, "Alice", *resp.FirstName)
	assert.Equal(t, "alice.new@example.com", resp.Email)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, "alice")
	seedUser(store, "bob")

	service := NewUserService(store.repos().User, zap.NewNop())

	taken := "bob@example.com"
	_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		Email: &taken,
	})
	require.Error(t, err)

	var validationErr *utils.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "email")
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, "alice")

	service := NewUserService(store.repos().User, zap.NewNop())

	password := "newpass99"
	_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		Password: &password,
	})
	require.NoError(t, err)

	updated := store.users[user.ID]
	assert.NotEqual(t, "newpass99", updated.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("newpass99", updated.PasswordHash))
}

func TestDeleteProfile(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, "alice")

	service := NewUserService(store.repos().User, zap.NewNop())

	require.NoError(t, service.DeleteProfile(context.Background(), user.ID))
	assert.Empty(t, store.users)

	err := service.DeleteProfile(context.Background(), user.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestListUsers(t *testing.T) {
	store := newFakeStore()
	for _, name := range []string{"alice", "bob", "carol"} {
		seedUser(store, name)
	}

	service := NewUserService(store.repos().User, zap.NewNop())

	page, err := service.ListUsers(context.Background(), &request.PaginatedRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Equal(t, 2, *page.Next)
	assert.Nil(t, page.Previous)
}
