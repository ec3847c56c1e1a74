package database

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo(t *testing.T) {
	repo := newTestDB(t).UserRepo()
	ctx := context.Background()

	user, err := repo.Add(ctx, models.User{
		Email:             " Admin@Example.com ",
		Username:          "admin",
		PasswordHash:      "$2a$10$hash",
		VerificationToken: ptr("token-123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.False(t, user.Verified)

	_, err = repo.Add(ctx, models.User{Email: "admin@example.com", Username: "copy", PasswordHash: "x"})
	assert.True(t, errs.IsUniqueConstraintViolationError(err))

	found, err := repo.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.Verify(ctx, "wrong")
	assert.True(t, errs.IsInvalidTokenError(err))

	verified, err := repo.Verify(ctx, "token-123")
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Nil(t, verified.VerificationToken)

	_, err = repo.Verify(ctx, "token-123")
	assert.True(t, errs.IsInvalidTokenError(err))

	renamed, err := repo.Update(ctx, user.ID, models.UserPatch{Username: models.Some("owner")})
	require.NoError(t, err)
	assert.Equal(t, "owner", renamed.Username)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.FindByID(ctx, user.ID)
	assert.True(t, errs.IsNotFound(err))
}
