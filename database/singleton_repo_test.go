package database

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepoUpsert(t *testing.T) {
	repo := newTestDB(t).ProfileRepo()
	ctx := context.Background()

	empty, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileKey, empty.ID)
	assert.NotNil(t, empty.SocialLinks)

	_, err = repo.Upsert(ctx, models.ProfileInfoPatch{})
	assert.True(t, errs.IsNoChanges(err))

	saved, err := repo.Upsert(ctx, models.ProfileInfoPatch{
		Name:        models.Some("Sam Doe"),
		SocialLinks: models.Some(models.LinkMap{"github": "https://github.com/samdoe"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam Doe", saved.Name)
	assert.Equal(t, models.LinkMap{"github": "https://github.com/samdoe"}, saved.SocialLinks)

	again, err := repo.Upsert(ctx, models.ProfileInfoPatch{Title: models.Some("Engineer")})
	require.NoError(t, err)
	assert.Equal(t, "Sam Doe", again.Name)
	assert.Equal(t, "Engineer", again.Title)
	assert.Equal(t, saved.SocialLinks, again.SocialLinks)
	assert.True(t, again.CreatedAt.Equal(saved.CreatedAt))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Title)
}

func TestSiteSettingsRepoUpsert(t *testing.T) {
	repo := newTestDB(t).SiteSettingsRepo()
	ctx := context.Background()

	defaults, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, defaults.ShowBlog)
	assert.True(t, defaults.ShowProjects)
	assert.False(t, defaults.MaintenanceMode)

	saved, err := repo.Upsert(ctx, models.SiteSettingsPatch{
		SiteTitle: models.Some("My Portfolio"),
		ShowBlog:  models.Some(false),
		Keywords:  models.Some(models.StringList{"go", "portfolio"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "My Portfolio", saved.SiteTitle)
	assert.False(t, saved.ShowBlog)
	assert.True(t, saved.ShowProjects)
	assert.Equal(t, models.StringList{"go", "portfolio"}, saved.Keywords)
	assert.NotNil(t, saved.NavLinks)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.SiteTitle, got.SiteTitle)
	assert.False(t, got.ShowBlog)
}
