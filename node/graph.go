package node

import "github.com/dudk/sound"

// Graph returns the transitive closure of Sources starting from root, root
// included. Each distinct node is returned at most once, in depth-first
// pre-order. Traversal is gated by a visited set, so it terminates even
// when root participates in a cycle; sampling such a graph, however, will
// not.
func Graph(root sound.Node) []sound.Node {
	visited := make(map[sound.Node]struct{})
	var order []sound.Node
	var walk func(n sound.Node)
	walk = func(n sound.Node) {
		if n == nil {
			return
		}
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		order = append(order, n)
		for _, src := range n.Sources() {
			walk(src)
		}
	}
	walk(root)
	return order
}
