package keyword

// node is one trie vertex. A terminal node ends a keyword and carries its
// clean name; the root is never terminal.
type node struct {
	children map[rune]*node
	clean    string
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// empty reports whether the node can be pruned.
func (n *node) empty() bool {
	return !n.terminal && len(n.children) == 0
}

// walk visits every terminal node below n, passing the rune path from n.
func (n *node) walk(prefix []rune, visit func(path []rune, n *node)) {
	if n.terminal {
		visit(prefix, n)
	}
	for r, child := range n.children {
		child.walk(append(prefix, r), visit)
	}
}
