package sqlquery

// PushDownColumns walks q's subquery graph and ensures every subquery also
// selects the given base columns, so an outer layer that was just handed
// extra grouping expressions has the inputs it needs (spec §4.4).
//
// Traversal is memoized by a stable per-query identity (assigned here via
// pointer identity, since this implementation never copies a *Query node
// behind the push-down's back) so a query reachable through more than one
// path is only patched once, and cycles can't cause infinite recursion.
func PushDownColumns(q *Query, cols []string) {
	if len(cols) == 0 {
		return
	}
	visited := make(map[*Query]bool)
	pushDown(q, cols, visited)
}

func pushDown(q *Query, cols []string, visited map[*Query]bool) {
	for _, s := range q.Subqueries() {
		if visited[s] {
			continue
		}
		visited[s] = true

		if len(s.from) > 0 {
			items := make([]SelectItem, len(cols))
			for i, c := range cols {
				items[i] = Select(Col(c), "")
			}
			*s = *s.WithSelect(items)
		}

		pushDown(s, cols, visited)
	}
}
