package chain

// reconstruct walks parent links from the leaf at idx back to the root and
// returns the values in root-first order. Termination needs no cycle check:
// links only point upward and every hop shortens the value by one rune.
func reconstruct(t *tree, idx int) []string {
	path := []string{t.nodes[idx].value}
	for t.nodes[idx].parent != noParent {
		idx = t.nodes[idx].parent
		path = append(path, t.nodes[idx].value)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
