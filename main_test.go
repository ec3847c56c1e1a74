package main

import (
	"testing"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    database.Config
		wantErr bool
	}{
		{
			name: "sqlite default",
			env:  map[string]string{},
			want: database.Config{Driver: "sqlite", DSN: "portfolio.db"},
		},
		{
			name: "sqlite path",
			env:  map[string]string{"DB_TYPE": "sqlite", "SQLITE_PATH": "/data/site.db"},
			want: database.Config{Driver: "sqlite", DSN: "/data/site.db"},
		},
		{
			name: "postgres",
			env:  map[string]string{"DB_TYPE": "postgres", "DATABASE_URL": "postgres://u:p@db/site", "DB_MAX_CONNS": "4"},
			want: database.Config{Driver: "postgres", DSN: "postgres://u:p@db/site", MaxConns: 4},
		},
		{
			name:    "postgres without url",
			env:     map[string]string{"DB_TYPE": "postgres"},
			wantErr: true,
		},
		{
			name: "supabase",
			env: map[string]string{
				"DB_TYPE":              "supa",
				"SUPABASE_DB_HOST":     "db.example.co",
				"SUPABASE_DB_USER":     "postgres",
				"SUPABASE_DB_PASSWORD": "it's secret",
				"SUPABASE_DB_NAME":     "postgres",
			},
			want: database.Config{
				Driver:   "supa",
				DSN:      `host=db.example.co user=postgres password='it\'s secret' dbname=postgres port=5432 sslmode=require`,
				MaxConns: 10,
			},
		},
		{
			name:    "unknown",
			env:     map[string]string{"DB_TYPE": "mysql"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := databaseConfig(tt.env)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
