package models

// CommentNode is a comment together with its replies.
type CommentNode struct {
	Comment
	Children []*CommentNode `json:"children"`
}

// BuildCommentTree arranges a flat, chronologically ordered comment list into
// a forest. Replies keep their input order. A comment whose parent is missing
// from the list, or whose parent chain loops back to itself, becomes a root.
func BuildCommentTree(flat []Comment) []*CommentNode {
	nodes := make([]*CommentNode, len(flat))
	index := make(map[string]*CommentNode, len(flat))
	for i := range flat {
		nodes[i] = &CommentNode{Comment: flat[i], Children: []*CommentNode{}}
		if _, dup := index[flat[i].ID]; !dup {
			index[flat[i].ID] = nodes[i]
		}
	}

	roots := make([]*CommentNode, 0, len(flat))
	for _, node := range nodes {
		parent := attachableParent(node, index)
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// attachableParent returns the node's parent from index, or nil when the
// parent is unknown or following parents from it leads back to node.
func attachableParent(node *CommentNode, index map[string]*CommentNode) *CommentNode {
	if node.ParentID == nil {
		return nil
	}
	parent, ok := index[*node.ParentID]
	if !ok || parent == node {
		return nil
	}

	// at most len(index) hops before a chain must have ended
	cur := parent
	for hops := 0; hops <= len(index); hops++ {
		if cur.ParentID == nil {
			return parent
		}
		next, ok := index[*cur.ParentID]
		if !ok {
			return parent
		}
		if next == node {
			return nil
		}
		cur = next
	}
	// the chain loops without passing through node
	return parent
}
