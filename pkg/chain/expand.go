package chain

// expand computes the next generation of the search tree. For every node in
// the frontier it tries deleting each single rune of the node's value and
// keeps the candidates the dictionary knows about, appending them to the tree
// as children of that node.
//
// Candidates are deduplicated by value within one parent only: "aab" produces
// "ab" twice from different positions but yields one child. The same value
// reached from two different parents stays two distinct branches.
func expand(t *tree, frontier []int, dict Dictionary) []int {
	var next []int

	for _, idx := range frontier {
		runes := []rune(t.nodes[idx].value)
		if len(runes) == 0 {
			continue
		}

		seen := make(map[string]struct{}, len(runes))
		buf := make([]rune, len(runes)-1)

		for i := range runes {
			copy(buf, runes[:i])
			copy(buf[i:], runes[i+1:])
			candidate := string(buf)

			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}

			if !dict.Contains(candidate) {
				continue
			}
			next = append(next, t.add(idx, candidate))
		}
	}
	return next
}
