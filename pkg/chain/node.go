package chain

// noParent marks the root node's parent slot.
const noParent = -1

// node is one string value reached during a search. Nodes live in a tree
// arena and point back at their parent by index; they are never mutated
// after being appended.
type node struct {
	value  string
	parent int
}

// tree is the arena of nodes built during one search. Index 0 is always the
// root. Child-to-parent links only, so branching fan-out needs no ownership
// bookkeeping: the arena owns everything and is dropped wholesale once the
// chains have been reconstructed.
type tree struct {
	nodes []node
}

// newTree creates a tree holding only the root value.
func newTree(root string) *tree {
	return &tree{nodes: []node{{value: root, parent: noParent}}}
}

// add appends a child of parent and returns its index.
func (t *tree) add(parent int, value string) int {
	t.nodes = append(t.nodes, node{value: value, parent: parent})
	return len(t.nodes) - 1
}

// depth counts parent hops from the node at idx to the root.
func (t *tree) depth(idx int) int {
	d := 0
	for t.nodes[idx].parent != noParent {
		idx = t.nodes[idx].parent
		d++
	}
	return d
}
