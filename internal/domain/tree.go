package domain

// TreeNode is one visited position while walking the sea from a root.
//
// The same Bubble may show up at several positions since the graph is a DAG;
// Parent is the position it was reached from, not a property of the Bubble.
type TreeNode struct {
	ID         ID
	Bubble     Bubble
	Missing    bool // referenced but not resolvable
	Cycle      bool // already on the path from the root, not expanded
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Senpai returns the sibling directly above n, if any
func (n *TreeNode) Senpai() *TreeNode {
	if n.Parent == nil {
		return nil
	}
	var prev *TreeNode
	for _, c := range n.Parent.Children {
		if c == n {
			return prev
		}
		prev = c
	}
	return nil
}

// Grandparent returns the parent's parent, if any
func (n *TreeNode) Grandparent() *TreeNode {
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Parent
}

// OnPath reports whether id is n or one of its ancestors
func (n *TreeNode) OnPath(id ID) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.ID == id {
			return true
		}
	}
	return false
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
