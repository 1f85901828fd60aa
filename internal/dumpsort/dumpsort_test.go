package dumpsort

import "github.com/pgschema/pgdumpsort/internal/catalog"

// obj builds a minimal object with the given dependencies for
// toposort/cyclefinder/sort tests, which only care about DumpID,
// Kind, and Dependencies.
func obj(id int, kind catalog.Kind, deps ...int) *catalog.Object {
	return &catalog.Object{DumpID: id, Kind: kind, Dependencies: deps}
}

func orderOf(sorted []*catalog.Object) map[int]int {
	m := make(map[int]int, len(sorted))
	for i, o := range sorted {
		m[o.DumpID] = i
	}
	return m
}
