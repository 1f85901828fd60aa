package dumpsort

import "github.com/pgschema/pgdumpsort/internal/catalog"

// findLoop performs the bounded DFS of spec §4.4 from startID, over
// the subgraph restricted to remainder (objects the topological sort
// could not place). It returns the dumpIds making up one elementary
// cycle through startID, or nil if no such cycle exists.
//
// processed marks ids that have already been repaired or proven
// cycle-free from an earlier start point in this pass; searchFailed
// records, for a given vertex id, the start id for which no return
// path was found — keyed by the start point rather than a plain bool,
// so it never needs to be re-zeroed between start points (the
// deliberate O(N) optimization the design notes call out).
func findLoop(startID int, remainder map[int]*catalog.Object, processed map[int]bool, searchFailed map[int]int) []int {
	visiting := make(map[int]bool)
	var path []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		visiting[id] = true
		path = append(path, id)

		obj := remainder[id]
		found := false
		for _, dep := range obj.Dependencies {
			if dep == startID {
				found = true
				break
			}
			if _, ok := remainder[dep]; !ok {
				continue // edge leaves the remainder, not part of any cycle here
			}
			if processed[dep] {
				continue
			}
			if searchFailed[dep] == startID {
				continue
			}
			if visiting[dep] {
				continue // on the current path but via a different cycle; skip
			}
			if dfs(dep) {
				found = true
				break
			}
		}

		if !found {
			searchFailed[id] = startID
			path = path[:len(path)-1]
			visiting[id] = false
		}
		return found
	}

	if dfs(startID) {
		out := make([]int, len(path))
		copy(out, path)
		return out
	}
	return nil
}
