package dag

// PreOrder returns the IDs reachable from start by following child edges,
// in depth-first pre-order. A node is recorded when it is first visited,
// before any of its children, and siblings are visited in edge insertion
// order. Each node appears at most once, even when it can be reached through
// several parents.
//
// The traversal uses an explicit stack; the visited set guarantees
// termination on graphs that violate acyclicity. Returns nil if start does
// not exist.
func (d *DAG) PreOrder(start string) []string {
	if _, ok := d.nodes[start]; !ok {
		return nil
	}

	visited := make(map[string]bool)
	var order []string
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)

		// Push in reverse so the first-inserted child is popped first.
		children := d.outgoing[id]
		for i := len(children) - 1; i >= 0; i-- {
			if !visited[children[i]] {
				stack = append(stack, children[i])
			}
		}
	}
	return order
}

// Ancestors returns every node reachable from id by following parent edges
// backwards, excluding id itself. The map value is the generation distance:
// 1 for direct parents, 2 for grandparents and so on. When an ancestor can
// be reached along several paths, the shortest distance is kept.
//
// Returns an empty, non-nil map if id has no parents or does not exist.
func (d *DAG) Ancestors(id string) map[string]int {
	dist := make(map[string]int)
	if _, ok := d.nodes[id]; !ok {
		return dist
	}

	frontier := []string{id}
	for depth := 1; len(frontier) > 0; depth++ {
		var next []string
		for _, n := range frontier {
			for _, p := range d.incoming[n] {
				if p == id {
					continue
				}
				if _, seen := dist[p]; seen {
					continue
				}
				dist[p] = depth
				next = append(next, p)
			}
		}
		frontier = next
	}
	return dist
}
