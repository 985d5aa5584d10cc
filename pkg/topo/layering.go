package topo

// Layers assigns each node a layer based on its depth in the graph:
// sources (no incoming edges) sit at layer 0, every other node at one plus
// the maximum layer of its parents.
//
// The assignment uses a longest-path topological traversal (Kahn's
// algorithm):
//  1. Initialize all in-degree-0 nodes at layer 0 and enqueue them
//  2. For each dequeued node, raise children to max(child, current+1)
//  3. Decrement in-degree counters; enqueue newly zero-degree nodes
//
// Cycles are tolerated: nodes on a cycle never reach zero in-degree and
// keep whatever layer the acyclic prefix pushed them to (0 for a pure
// cycle). The result is arbitrary for those nodes but deterministic, so a
// cyclic document always lays out the same way.
//
// Time complexity is O(N+E).
func Layers(g *Graph) map[string]int {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	layers := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, id := range nodes {
		layers[id] = 0
		degree := g.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if layer := layers[curr] + 1; layer > layers[child] {
				layers[child] = layer
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layers
}

// MaxLayer returns the highest layer value in an assignment, or 0 for an
// empty map.
func MaxLayer(layers map[string]int) int {
	max := 0
	for _, l := range layers {
		if l > max {
			max = l
		}
	}
	return max
}
