package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_KEY", "a=b")

	cfg := New()
	assert.Equal(t, "a=b", cfg["PORTFOLIO_TEST_KEY"])
}

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":             "8080",
		"BAD_INT":          "eighty",
		"LOG_LEVEL":        "",
		"FLAG":             "true",
		"ACCEPTED_ORIGINS": "https://a.example, ,https://b.example",
	}

	assert.Equal(t, "8080", GetString(cfg, "PORT", "80"))
	assert.Equal(t, "info", GetString(cfg, "LOG_LEVEL", "info"))
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))

	assert.Equal(t, 8080, GetInt(cfg, "PORT", 80))
	assert.Equal(t, 80, GetInt(cfg, "BAD_INT", 80))
	assert.Equal(t, 80, GetInt(cfg, "MISSING", 80))

	assert.True(t, GetBool(cfg, "FLAG", false))
	assert.True(t, GetBool(cfg, "PORT", true))
	assert.False(t, GetBool(cfg, "MISSING", false))

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(cfg, "ACCEPTED_ORIGINS"))
	assert.Nil(t, GetList(cfg, "MISSING"))
}

func TestMerge(t *testing.T) {
	merged := Merge(map[string]string{"A": "1", "B": "2"}, map[string]string{"B": "3", "C": "4"})
	assert.Equal(t, map[string]string{"A": "1", "B": "3", "C": "4"}, merged)

	assert.Equal(t, map[string]string{"A": "1"}, Merge(nil, map[string]string{"A": "1"}))
}

type fakeLister struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeLister) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[f.calls]}
	f.calls++
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestFetchParameters(t *testing.T) {
	lister := &fakeLister{pages: [][]types.Parameter{
		{
			{Name: aws.String("/portfolio/prod/DATABASE_URL"), Value: aws.String("postgres://db")},
			{Name: aws.String("/portfolio/prod/BACKEND_PASSWORD"), Value: aws.String("secret")},
		},
		{
			{Name: aws.String("/portfolio/prod/nested/PORT"), Value: aws.String("9000")},
		},
	}}

	values, err := FetchParameters(context.Background(), lister, "portfolio/prod")
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
	assert.Equal(t, map[string]string{
		"DATABASE_URL":     "postgres://db",
		"BACKEND_PASSWORD": "secret",
		"PORT":             "9000",
	}, values)
}

func TestFetchParametersError(t *testing.T) {
	_, err := FetchParameters(context.Background(), &fakeLister{err: errors.New("denied")}, "/portfolio")
	assert.Error(t, err)
}
