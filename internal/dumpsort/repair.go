package dumpsort

import (
	"fmt"
	"strings"

	"github.com/pgschema/pgdumpsort/internal/catalog"
)

// edgeKey identifies a directed dependency edge for the repaired set
// below.
type edgeKey struct{ from, to int }

// repairContext bundles the two boundary ids, threaded explicitly
// instead of as module-level state (design note: prefer explicit
// parameters to the original's global statics). Patterns #3, #8 and
// #13 add an edge to postBoundary; #4/#5 and #6 locate their boundary
// among the cycle's own vertices instead. repaired mirrors pg_dump_sort.c's
// findAlreadyAddedFlagId: patterns #3, #8, #10 and #13 both drop and
// re-add an edge between the same two objects, so if the pair turns up
// in a cycle again on a later sort retry, the pattern is not reapplied
// (it would just toggle the same edge back and forth) and the cycle
// falls through to a later pattern or the catch-all instead.
type repairContext struct {
	reg          *catalog.Registry
	preBoundary  int
	postBoundary int
	repaired     map[edgeKey]bool
}

// repairCycle selects the first applicable pattern from §4.5's table
// for cycle and applies it, mutating the graph through reg. It
// returns any warning the pattern produced (rows #15/#16 only).
func repairCycle(cycle []*catalog.Object, ctx repairContext) (*Warning, error) {
	reg := ctx.reg

	// #14 — self-loop on a table: drop silently.
	if len(cycle) == 1 && cycle[0].Kind == catalog.KindTable {
		o := cycle[0]
		reg.RemoveDependency(o, o.DumpID)
		return nil, nil
	}

	if len(cycle) == 2 {
		a, b := cycle[0], cycle[1]

		// #1 — type <-> I/O function.
		if typ, fn, ok := matchTypeFunction(a, b); ok && typ.Type.ShellType != nil {
			shell := typ.Type.ShellType
			reg.RemoveDependency(fn, typ.DumpID)
			reg.AddDependency(fn, shell.DumpID)
			if fn.Function != nil && fn.Dump.Has(catalog.DumpDefinition) {
				shell.Dump |= catalog.DumpDefinition
			}
			return nil, nil
		}

		// #2 — view/matview <-> ON SELECT rule, direct loop.
		if view, rule, ok := matchViewRule(a, b); ok && view.Table != nil {
			reg.RemoveDependency(rule, view.DumpID)
			return nil, nil
		}

		// #7 — table <-> CHECK constraint.
		if constraint, table, ok := matchTableCheck(a, b); ok {
			reg.RemoveDependency(constraint, table.DumpID)
			return nil, nil
		}

		// #9 — table <-> attribute default.
		if attrdef, table, ok := matchTableAttrDef(a, b); ok {
			reg.RemoveDependency(attrdef, table.DumpID)
			return nil, nil
		}

		// #11 — partitioned index <-> child index.
		if parent, child, ok := matchIndexAttach(a, b); ok {
			reg.RemoveDependency(parent, child.DumpID)
			return nil, nil
		}

		// #12 — domain <-> CHECK/NOT NULL constraint.
		if constraint, domain, ok := matchDomainConstraint(a, b); ok {
			reg.RemoveDependency(constraint, domain.DumpID)
			return nil, nil
		}
	}

	if len(cycle) > 2 {
		// #3 — view <-> rule, indirect, not a matview.
		if view, rule, ok := findViewRuleInCycle(cycle); ok {
			key := edgeKey{rule.DumpID, view.DumpID}
			if !ctx.repaired[key] {
				reg.RemoveDependency(view, rule.DumpID)
				view.Table.DummyView = true
				rule.Rule.Separate = true
				reg.AddDependency(rule, view.DumpID)
				reg.AddDependency(rule, ctx.postBoundary)
				ctx.repaired[key] = true
				return nil, nil
			}
		}

		// #4 — matview <-> pre-data boundary.
		if boundary, ok := findBoundaryInCycle(cycle, catalog.KindPreDataBoundary); ok {
			if succ, ok := matviewSuccessor(cycle, boundary); ok {
				reg.RemoveDependency(boundary, succ.DumpID)
				if succ.Table != nil {
					succ.Table.PostponedDef = true
				}
				if succ.RelStats != nil {
					succ.RelStats.PostponedDef = true
				}
				return nil, nil
			}
		}

		// #5 — matview stats <-> post-data boundary.
		if boundary, ok := findBoundaryInCycle(cycle, catalog.KindPostDataBoundary); ok {
			if succ, ok := relStatsSuccessor(cycle, boundary); ok {
				reg.RemoveDependency(boundary, succ.DumpID)
				if succ.RelStats != nil {
					succ.RelStats.PostponedDef = true
				}
				return nil, nil
			}
		}

		// #6 — function <-> pre-data boundary.
		if boundary, ok := findBoundaryInCycle(cycle, catalog.KindPreDataBoundary); ok {
			if succ, ok := functionSuccessor(cycle, boundary); ok {
				reg.RemoveDependency(boundary, succ.DumpID)
				succ.Function.PostponedDef = true
				return nil, nil
			}
		}

		// #8 — table <-> CHECK, indirect.
		if constraint, table, ok := findTableCheckInCycle(cycle); ok {
			key := edgeKey{table.DumpID, constraint.DumpID}
			if !ctx.repaired[key] {
				reg.RemoveDependency(table, constraint.DumpID)
				constraint.Constraint.Separate = true
				reg.AddDependency(constraint, table.DumpID)
				reg.AddDependency(constraint, ctx.postBoundary)
				ctx.repaired[key] = true
				return nil, nil
			}
		}

		// #10 — table <-> attrdef, indirect.
		if attrdef, table, ok := findTableAttrDefInCycle(cycle); ok {
			key := edgeKey{table.DumpID, attrdef.DumpID}
			if !ctx.repaired[key] {
				reg.RemoveDependency(table, attrdef.DumpID)
				attrdef.AttrDef.Separate = true
				reg.AddDependency(attrdef, table.DumpID)
				ctx.repaired[key] = true
				return nil, nil
			}
		}

		// #13 — domain <-> CHECK/NOT NULL, indirect.
		if constraint, domain, ok := findDomainConstraintInCycle(cycle); ok {
			key := edgeKey{domain.DumpID, constraint.DumpID}
			if !ctx.repaired[key] {
				reg.RemoveDependency(domain, constraint.DumpID)
				constraint.Constraint.Separate = true
				reg.AddDependency(constraint, domain.DumpID)
				reg.AddDependency(constraint, ctx.postBoundary)
				ctx.repaired[key] = true
				return nil, nil
			}
		}
	}

	// An arbitrary-break branch always removes the edge from the first
	// to the second cycle vertex (wrapping around for a length-1
	// cycle, i.e. its self-edge); this is the one edge every
	// findLoop-returned cycle is guaranteed to actually contain.
	breakEdgeTarget := cycle[1%len(cycle)]

	// #15 — circular FK among table-data.
	if allTableData(cycle) {
		reg.RemoveDependency(cycle[0], breakEdgeTarget.DumpID)
		return &Warning{
			Message: fmt.Sprintf("ignoring circular foreign-key constraints between tables: %s; try --disable-triggers or a non-data-only dump", describeNames(cycle)),
			Objects: cycle,
		}, nil
	}

	// #16 — no pattern matched: warn and break arbitrarily, sort progresses.
	reg.RemoveDependency(cycle[0], breakEdgeTarget.DumpID)
	return &Warning{
		Message: fmt.Sprintf("could not resolve dependency loop among these items: %s", describeNames(cycle)),
		Objects: cycle,
	}, nil
}

func describeNames(cycle []*catalog.Object) string {
	parts := make([]string, len(cycle))
	for i, o := range cycle {
		parts[i] = catalog.Describe(o)
	}
	return strings.Join(parts, ", ")
}

func allTableData(cycle []*catalog.Object) bool {
	for _, o := range cycle {
		if o.Kind != catalog.KindTableData {
			return false
		}
	}
	return true
}

func matchTypeFunction(a, b *catalog.Object) (typ, fn *catalog.Object, ok bool) {
	if a.Kind == catalog.KindType && b.Kind == catalog.KindFunction {
		return a, b, true
	}
	if b.Kind == catalog.KindType && a.Kind == catalog.KindFunction {
		return b, a, true
	}
	return nil, nil, false
}

func matchViewRule(a, b *catalog.Object) (view, rule *catalog.Object, ok bool) {
	view, rule = pickViewRule(a, b)
	if view == nil {
		return nil, nil, false
	}
	if rule.Rule == nil || rule.Rule.EvType != '1' || !rule.Rule.IsInstead || rule.Rule.Table != view {
		return nil, nil, false
	}
	return view, rule, true
}

func pickViewRule(a, b *catalog.Object) (view, rule *catalog.Object) {
	if a.Kind == catalog.KindTable && b.Kind == catalog.KindRule {
		return a, b
	}
	if b.Kind == catalog.KindTable && a.Kind == catalog.KindRule {
		return b, a
	}
	return nil, nil
}

func matchTableCheck(a, b *catalog.Object) (constraint, table *catalog.Object, ok bool) {
	constraint, table = pickConstraintTable(a, b)
	if constraint == nil {
		return nil, nil, false
	}
	if constraint.Constraint.ContType != 'c' || constraint.Constraint.Table != table {
		return nil, nil, false
	}
	return constraint, table, true
}

func pickConstraintTable(a, b *catalog.Object) (constraint, table *catalog.Object) {
	if a.Kind == catalog.KindConstraint && b.Kind == catalog.KindTable {
		return a, b
	}
	if b.Kind == catalog.KindConstraint && a.Kind == catalog.KindTable {
		return b, a
	}
	return nil, nil
}

func matchTableAttrDef(a, b *catalog.Object) (attrdef, table *catalog.Object, ok bool) {
	attrdef, table = pickAttrDefTable(a, b)
	if attrdef == nil {
		return nil, nil, false
	}
	if attrdef.AttrDef.Table != table {
		return nil, nil, false
	}
	return attrdef, table, true
}

func pickAttrDefTable(a, b *catalog.Object) (attrdef, table *catalog.Object) {
	if a.Kind == catalog.KindAttrDef && b.Kind == catalog.KindTable {
		return a, b
	}
	if b.Kind == catalog.KindAttrDef && a.Kind == catalog.KindTable {
		return b, a
	}
	return nil, nil
}

func matchIndexAttach(a, b *catalog.Object) (parent, child *catalog.Object, ok bool) {
	if a.Kind != catalog.KindIndex || b.Kind != catalog.KindIndex {
		return nil, nil, false
	}
	if a.Index == nil || b.Index == nil {
		return nil, nil, false
	}
	if a.Index.ParentIndexOID == b.CatalogID.OID && a.Index.ParentIndexOID != 0 {
		return b, a, true
	}
	if b.Index.ParentIndexOID == a.CatalogID.OID && b.Index.ParentIndexOID != 0 {
		return a, b, true
	}
	return nil, nil, false
}

func matchDomainConstraint(a, b *catalog.Object) (constraint, domain *catalog.Object, ok bool) {
	constraint, domain = pickConstraintDomain(a, b)
	if constraint == nil {
		return nil, nil, false
	}
	ct := constraint.Constraint.ContType
	if (ct != 'c' && ct != 'n') || constraint.Constraint.Domain != domain {
		return nil, nil, false
	}
	return constraint, domain, true
}

func pickConstraintDomain(a, b *catalog.Object) (constraint, domain *catalog.Object) {
	if a.Kind == catalog.KindConstraint && b.Kind == catalog.KindType {
		return a, b
	}
	if b.Kind == catalog.KindConstraint && a.Kind == catalog.KindType {
		return b, a
	}
	return nil, nil
}

func findViewRuleInCycle(cycle []*catalog.Object) (view, rule *catalog.Object, ok bool) {
	for _, a := range cycle {
		for _, b := range cycle {
			if a == b {
				continue
			}
			if v, r, ok := matchViewRuleLoose(a, b); ok && v.Table.RelKind != 'm' {
				return v, r, true
			}
		}
	}
	return nil, nil, false
}

// matchViewRuleLoose is like matchViewRule but without the length-2
// restriction, used when scanning a longer cycle for a view/rule pair.
func matchViewRuleLoose(a, b *catalog.Object) (view, rule *catalog.Object, ok bool) {
	view, rule = pickViewRule(a, b)
	if view == nil || view.Table == nil {
		return nil, nil, false
	}
	if rule.Rule == nil || rule.Rule.Table != view {
		return nil, nil, false
	}
	return view, rule, true
}

func findBoundaryInCycle(cycle []*catalog.Object, kind catalog.Kind) (*catalog.Object, bool) {
	for _, o := range cycle {
		if o.Kind == kind {
			return o, true
		}
	}
	return nil, false
}

func cycleSuccessor(cycle []*catalog.Object, o *catalog.Object) *catalog.Object {
	for i, c := range cycle {
		if c == o {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return nil
}

func matviewSuccessor(cycle []*catalog.Object, boundary *catalog.Object) (*catalog.Object, bool) {
	succ := cycleSuccessor(cycle, boundary)
	if succ == nil {
		return nil, false
	}
	if succ.Kind == catalog.KindTable && succ.Table != nil && succ.Table.RelKind == 'm' {
		return succ, true
	}
	if succ.Kind == catalog.KindRelStats {
		return succ, true
	}
	return nil, false
}

func relStatsSuccessor(cycle []*catalog.Object, boundary *catalog.Object) (*catalog.Object, bool) {
	succ := cycleSuccessor(cycle, boundary)
	if succ == nil {
		return nil, false
	}
	if succ.Kind == catalog.KindRelStats {
		return succ, true
	}
	return nil, false
}

func functionSuccessor(cycle []*catalog.Object, boundary *catalog.Object) (*catalog.Object, bool) {
	succ := cycleSuccessor(cycle, boundary)
	if succ == nil || succ.Kind != catalog.KindFunction || succ.Function == nil {
		return nil, false
	}
	return succ, true
}

func findTableCheckInCycle(cycle []*catalog.Object) (constraint, table *catalog.Object, ok bool) {
	for _, a := range cycle {
		for _, b := range cycle {
			if a == b {
				continue
			}
			if c, t, ok := matchTableCheck(a, b); ok {
				return c, t, true
			}
		}
	}
	return nil, nil, false
}

func findTableAttrDefInCycle(cycle []*catalog.Object) (attrdef, table *catalog.Object, ok bool) {
	for _, a := range cycle {
		for _, b := range cycle {
			if a == b {
				continue
			}
			if ad, t, ok := matchTableAttrDef(a, b); ok {
				return ad, t, true
			}
		}
	}
	return nil, nil, false
}

func findDomainConstraintInCycle(cycle []*catalog.Object) (constraint, domain *catalog.Object, ok bool) {
	for _, a := range cycle {
		for _, b := range cycle {
			if a == b {
				continue
			}
			if c, d, ok := matchDomainConstraint(a, b); ok {
				return c, d, true
			}
		}
	}
	return nil, nil, false
}
