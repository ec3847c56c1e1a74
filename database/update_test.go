package database

import (
	"testing"
	"time"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = map[string]string{
	"title":        "title",
	"startDate":    "start_date",
	"technologies": "technologies",
	"featured":     "featured",
}

func TestCompileUpdateEmpty(t *testing.T) {
	set, args, ok, err := CompileUpdate(sqliteDialect{}, testColumns, nil, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, set)
	assert.Nil(t, args)
}

func TestCompileUpdate(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fields := []Field{
		{Name: "startDate", Value: "2020-01"},
		{Name: "technologies", Kind: KindJSON, Value: models.StringList{"go", "sql"}},
		{Name: "featured", Kind: KindBool, Value: false},
	}

	set, args, ok, err := CompileUpdate(sqliteDialect{}, testColumns, fields, ts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "start_date = ?, technologies = ?, featured = ?, updated_at = ?", set)
	assert.Equal(t, []any{"2020-01", `["go","sql"]`, 0, ts}, args)

	set, args, ok, err = CompileUpdate(postgresDialect{}, testColumns, fields, ts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "start_date = $1, technologies = $2::jsonb, featured = $3, updated_at = $4", set)
	assert.Equal(t, []any{"2020-01", `["go","sql"]`, false, ts}, args)
}

func TestCompileUpdateUnknownField(t *testing.T) {
	_, _, _, err := CompileUpdate(sqliteDialect{}, testColumns, []Field{{Name: "slug", Value: "x"}}, time.Now())
	assert.Error(t, err)
}

func TestBuildUpdateNumbersID(t *testing.T) {
	ts := time.Now()
	stmt, args, ok, err := BuildUpdate(postgresDialect{}, "projects", testColumns, []Field{{Name: "title", Value: "T"}}, "id-1", ts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "UPDATE projects SET title = $1, updated_at = $2 WHERE id = $3", stmt)
	assert.Equal(t, []any{"T", ts, "id-1"}, args)
}

func TestAppendFieldSkipsUnset(t *testing.T) {
	var patch models.ProjectPatch
	patch.Title = models.Some("T")

	var fields []Field
	fields = appendField(fields, "title", KindValue, patch.Title)
	fields = appendField(fields, "description", KindValue, patch.Description)
	fields = appendField(fields, "featured", KindBool, patch.Featured)

	require.Len(t, fields, 1)
	assert.Equal(t, "title", fields[0].Name)
}

func TestBuildInsert(t *testing.T) {
	stmt, args, err := BuildInsert(postgresDialect{}, "site_settings", []Field{
		{Name: "id", Value: "site"},
		{Name: "nav_links", Kind: KindJSON, Value: models.LinkMap{}},
		{Name: "show_blog", Kind: KindBool, Value: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO site_settings (id, nav_links, show_blog) VALUES ($1, $2::jsonb, $3)", stmt)
	assert.Equal(t, []any{"site", "{}", true}, args)
}
