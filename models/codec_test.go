package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	cases := []StringList{
		{},
		{""},
		{"go", "", "sqlite"},
		{"quotes \"inside\"", "unicode ✓", "comma, separated"},
	}
	for _, tc := range cases {
		got := DecodeStringList(EncodeStringList(tc))
		assert.Equal(t, tc, got)
	}
}

func TestLinkMapRoundTrip(t *testing.T) {
	cases := []LinkMap{
		{},
		{"github": "https://github.com/someone"},
		{"": "", "x": "https://x.com/a?b=c&d=e"},
	}
	for _, tc := range cases {
		got := DecodeLinkMap(EncodeLinkMap(tc))
		assert.Equal(t, tc, got)
	}
}

func TestEncodeNilValues(t *testing.T) {
	assert.Equal(t, "[]", EncodeStringList(nil))
	assert.Equal(t, "{}", EncodeLinkMap(nil))
}

func TestDecodeEmptyText(t *testing.T) {
	for _, text := range []string{"", "  ", "null"} {
		list := DecodeStringList(text)
		require.NotNil(t, list)
		assert.Empty(t, list)

		links := DecodeLinkMap(text)
		require.NotNil(t, links)
		assert.Empty(t, links)
	}
}

func TestDecodeMalformedText(t *testing.T) {
	before := DecodeFailures()

	list := DecodeStringList("[not json")
	require.NotNil(t, list)
	assert.Empty(t, list)

	links := DecodeLinkMap(`["an","array"]`)
	require.NotNil(t, links)
	assert.Empty(t, links)

	assert.Equal(t, before+2, DecodeFailures())
}

func TestDecodeLegacyText(t *testing.T) {
	list := DecodeStringList(`[ "React", "TypeScript" ]`)
	assert.Equal(t, StringList{"React", "TypeScript"}, list)

	links := DecodeLinkMap(`{"linkedin":"https://linkedin.com/in/someone"}`)
	assert.Equal(t, LinkMap{"linkedin": "https://linkedin.com/in/someone"}, links)
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))
}

func TestEmptyValuesMarshalAsEmptyJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Tags  StringList `json:"tags"`
		Links LinkMap    `json:"links"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[],"links":{}}`, string(out))
}

func TestOptionalUnmarshal(t *testing.T) {
	var patch ProjectPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","imageUrl":null,"featured":false}`), &patch))

	assert.True(t, patch.Title.Set)
	assert.Equal(t, "New", patch.Title.Value)

	assert.True(t, patch.ImageURL.Set)
	assert.Nil(t, patch.ImageURL.Value)

	assert.True(t, patch.Featured.Set)
	assert.False(t, patch.Featured.Value)

	assert.False(t, patch.Description.Set)
	assert.False(t, patch.Technologies.Set)
}
