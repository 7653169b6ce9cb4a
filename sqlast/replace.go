package sqlast

// Replace returns a new node structurally identical to node except that
// every occurrence of oldChild among its direct children is replaced with
// newChild. It never mutates node or its children (spec §4.2 "replace
// (node, old_child, new_child) -> node', structural, non-mutating").
//
// The only multi-child Node in this package is *Script; a single
// statement's "children" in the sense relevant to filters (its WHERE
// clause, ORDER BY list, LIMIT/OFFSET) are changed by package builder's
// filter implementations, which rewrite the rendered SQL text rather
// than going through this generic Replace — that keeps Replace's contract
// here limited to the one place the pipeline actually needs it: swapping
// a sub-statement inside a Script (e.g. a filter rewriting one statement
// of a multi-statement batch).
func Replace(node Node, oldChild, newChild Node) Node {
	script, ok := node.(*Script)
	if !ok {
		if node == oldChild {
			return newChild
		}
		return node
	}

	newStmts := make([]Node, len(script.stmts))
	changed := false
	for i, s := range script.stmts {
		if s == oldChild {
			newStmts[i] = newChild
			changed = true
		} else {
			newStmts[i] = s
		}
	}
	if !changed {
		return script
	}
	return NewScript(newStmts)
}
