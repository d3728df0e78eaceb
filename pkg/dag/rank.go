package dag

// AssignRanks sets each node's Rank to the length of the longest path that
// reaches it from a source. Sources get rank 0 and every edge points from a
// lower rank to a strictly higher one.
//
// The traversal is Kahn's topological sort. On a cyclic graph the nodes on a
// cycle never reach in-degree zero and keep rank 0; call [DAG.Validate]
// first. Returns the number of distinct ranks.
func (d *DAG) AssignRanks() int {
	inDegree := make(map[string]int, len(d.order))
	ranks := make(map[string]int, len(d.order))
	queue := make([]string, 0, len(d.order))

	for _, id := range d.order {
		degree := d.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range d.Children(curr) {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	maxRank := -1
	for _, id := range d.order {
		n := d.nodes[id]
		n.Rank = ranks[id]
		maxRank = max(maxRank, n.Rank)
	}
	return maxRank + 1
}
