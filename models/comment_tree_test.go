package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(id string, parent string) Comment {
	c := Comment{ID: id, PostID: "post", Content: "comment " + id}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func ids(nodes []*CommentNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildCommentTree(t *testing.T) {
	flat := []Comment{
		comment("a", ""),
		comment("b", "a"),
		comment("c", ""),
		comment("d", "a"),
		comment("e", "b"),
	}

	roots := BuildCommentTree(flat)
	require.Equal(t, []string{"a", "c"}, ids(roots))

	a := roots[0]
	assert.Equal(t, []string{"b", "d"}, ids(a.Children))
	assert.Equal(t, []string{"e"}, ids(a.Children[0].Children))

	c := roots[1]
	assert.NotNil(t, c.Children)
	assert.Empty(t, c.Children)
}

func TestBuildCommentTreeMissingParent(t *testing.T) {
	flat := []Comment{
		comment("a", ""),
		comment("b", "gone"),
	}

	roots := BuildCommentTree(flat)
	assert.Equal(t, []string{"a", "b"}, ids(roots))
}

func TestBuildCommentTreeCycle(t *testing.T) {
	flat := []Comment{
		comment("a", "b"),
		comment("b", "a"),
		comment("self", "self"),
		comment("c", "a"),
	}

	roots := BuildCommentTree(flat)
	assert.Equal(t, []string{"a", "b", "self"}, ids(roots))
	assert.Equal(t, []string{"c"}, ids(roots[0].Children))
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	roots := BuildCommentTree(nil)
	require.NotNil(t, roots)
	assert.Empty(t, roots)
}
