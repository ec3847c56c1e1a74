package database

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepo(t *testing.T) {
	stepClock(t)
	repo := newTestDB(t).MessageRepo()
	ctx := context.Background()

	first, err := repo.Add(ctx, models.Message{Name: "Ada", Email: "ada@example.com", Message: "Hire you?"})
	require.NoError(t, err)
	assert.False(t, first.Read)
	_, err = repo.Add(ctx, models.Message{Name: "Bo", Email: "bo@example.com", Message: "Nice site", Subject: ptr("Hi")})
	require.NoError(t, err)

	_, err = repo.Add(ctx, models.Message{Name: "Empty", Email: "e@example.com"})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	unread, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	read, err := repo.Update(ctx, first.ID, models.MessagePatch{Read: models.Some(true)})
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = repo.Update(ctx, first.ID, models.MessagePatch{})
	assert.True(t, errs.IsNoChanges(err))

	unread, err = repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	onlyRead, err := repo.List(ctx, models.MessageFilter{Read: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, 1, onlyRead.TotalCount)
	assert.Equal(t, first.ID, onlyRead.Items[0].ID)

	all, err := repo.List(ctx, models.MessageFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, all.TotalCount)
	assert.Equal(t, "Bo", all.Items[0].Name)

	bySearch, err := repo.List(ctx, models.MessageFilter{Search: "ADA@"})
	require.NoError(t, err)
	assert.Equal(t, 1, bySearch.TotalCount)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
