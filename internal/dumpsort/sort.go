// Package dumpsort implements the dependency-aware ordering core:
// a cycle-tolerant topological sort, stable with respect to a
// type/name preferred order, backed by a pattern-matching loop-repair
// dispatcher for the handful of schema constructs that are inherently
// cyclic (types and their I/O functions, views and their rules,
// materialized views and the section boundaries, and so on).
package dumpsort

import (
	"github.com/pgschema/pgdumpsort/internal/catalog"
	"github.com/pgschema/pgdumpsort/internal/logger"
)

// SortDependencyAware is the main entry point (§6): it combines the
// type/name preferred order with the topological sort and loop
// repair until the sort converges, which it always eventually does
// since every repair strictly reduces some cycle's edge count.
//
// objs is the set of objects to order. reg must contain objs (and may
// contain more, for the comparator's recursive lookups) plus an
// accurate MaxDumpID. preBoundaryID and postBoundaryID identify the
// two section-boundary singletons described in §3.
func SortDependencyAware(objs []*catalog.Object, reg *catalog.Registry, preBoundaryID, postBoundaryID int) ([]*catalog.Object, []Warning, error) {
	if len(objs) == 0 {
		return nil, nil, nil
	}

	preferred := catalog.SortByTypeName(objs, reg)
	ctx := repairContext{
		reg:          reg,
		preBoundary:  preBoundaryID,
		postBoundary: postBoundaryID,
		repaired:     make(map[edgeKey]bool),
	}

	var warnings []Warning
	maxDumpID := reg.MaxDumpID()

	for {
		sorted, remainder, err := topologicalSort(preferred, maxDumpID)
		if err != nil {
			return nil, warnings, err
		}
		if remainder == nil {
			return sorted, warnings, nil
		}

		repaired, roundWarnings, err := repairRemainder(remainder, ctx)
		warnings = append(warnings, roundWarnings...)
		if err != nil {
			return nil, warnings, err
		}
		if repaired == 0 {
			return nil, warnings, fatalf("could not identify dependency loop among %d unresolved objects", len(remainder))
		}
	}
}

// repairRemainder runs one pass of cycle-finding over remainder,
// repairing every disjoint cycle it finds (§4.4: "only disjoint
// cycles are repaired in one pass; if two found cycles share a
// vertex, only the first is repaired and control returns" to the
// topological sort for a fresh attempt).
func repairRemainder(remainder []*catalog.Object, ctx repairContext) (int, []Warning, error) {
	byID := make(map[int]*catalog.Object, len(remainder))
	for _, o := range remainder {
		byID[o.DumpID] = o
	}

	processed := make(map[int]bool, len(remainder))
	searchFailed := make(map[int]int)

	var warnings []Warning
	repaired := 0

	for _, obj := range remainder {
		if processed[obj.DumpID] {
			continue
		}

		cycleIDs := findLoop(obj.DumpID, byID, processed, searchFailed)
		if cycleIDs == nil {
			processed[obj.DumpID] = true
			continue
		}

		overlap := false
		for _, id := range cycleIDs {
			if processed[id] {
				overlap = true
				break
			}
		}
		if overlap {
			break
		}

		cycle := make([]*catalog.Object, len(cycleIDs))
		for i, id := range cycleIDs {
			cycle[i] = byID[id]
		}

		w, err := repairCycle(cycle, ctx)
		if err != nil {
			return repaired, warnings, err
		}
		if w != nil {
			logger.Get().Warn(w.Message)
			warnings = append(warnings, *w)
		}
		for _, id := range cycleIDs {
			processed[id] = true
		}
		repaired++
	}

	return repaired, warnings, nil
}
