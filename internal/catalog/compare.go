package catalog

import "sort"

// Comparator implements the total order over objects described in
// spec §4.2: priority, schema name, name, kind, a kind-specific
// natural-key tail, and finally catalog OID. It never panics; a
// failed recursive lookup is treated as an inconclusive "equal" at
// that key, deferring to the next one.
type Comparator struct {
	reg *Registry
}

// NewComparator builds a Comparator that resolves recursive type and
// access-method lookups against reg.
func NewComparator(reg *Registry) *Comparator {
	return &Comparator{reg: reg}
}

// Compare returns <0, 0, >0 as a sorts before, equal to, or after b.
func (c *Comparator) Compare(a, b *Object) int {
	if a == b {
		return 0
	}

	if d := Priority(a.Kind) - Priority(b.Kind); d != 0 {
		return d
	}

	if d := compareSchema(a.Namespace, b.Namespace); d != 0 {
		return d
	}

	if d := compareStrings(a.Name, b.Name); d != 0 {
		return d
	}

	if d := int(a.Kind) - int(b.Kind); d != 0 {
		return d
	}

	if d := c.compareNaturalKey(a, b); d != 0 {
		return d
	}

	if d := int(a.CatalogID.OID) - int(b.CatalogID.OID); d != 0 {
		return d
	}
	return int(a.CatalogID.TableOID) - int(b.CatalogID.TableOID)
}

// Less reports whether a sorts strictly before b.
func (c *Comparator) Less(a, b *Object) bool {
	return c.Compare(a, b) < 0
}

func compareSchema(a, b *Object) int {
	// NULL schemas sort after non-NULL within a priority.
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return compareStrings(a.Name, b.Name)
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (c *Comparator) compareNaturalKey(a, b *Object) int {
	switch a.Kind {
	case KindFunction, KindAggregate:
		return c.compareFunctionTail(a, b)
	case KindOperator:
		return c.compareOperatorTail(a, b)
	case KindOpClass:
		if a.OpClass == nil || b.OpClass == nil {
			return 0
		}
		return c.compareAMTail(a.OpClass.AccessMethodOID, b.OpClass.AccessMethodOID)
	case KindOpFamily:
		if a.OpFamily == nil || b.OpFamily == nil {
			return 0
		}
		return c.compareAMTail(a.OpFamily.AccessMethodOID, b.OpFamily.AccessMethodOID)
	case KindCollation:
		if a.Collation == nil || b.Collation == nil {
			return 0
		}
		return a.Collation.Encoding - b.Collation.Encoding
	case KindAttrDef:
		if a.AttrDef == nil || b.AttrDef == nil {
			return 0
		}
		return a.AttrDef.AdNum - b.AttrDef.AdNum
	case KindPolicy, KindTrigger:
		return compareStrings(ownerName(a), ownerName(b))
	case KindRule:
		return compareStrings(ruleOwnerName(a), ruleOwnerName(b))
	case KindPublicationRel, KindPublicationTableInSchema:
		if a.PublicationRel == nil || b.PublicationRel == nil {
			return 0
		}
		return compareStrings(a.PublicationRel.Publication, b.PublicationRel.Publication)
	case KindConstraint, KindFKConstraint:
		return c.compareConstraintTail(a, b)
	default:
		return 0
	}
}

func ownerName(o *Object) string {
	p := o.Policy
	if o.Kind == KindTrigger {
		p = o.Trigger
	}
	if p == nil || p.Owner == nil {
		return ""
	}
	return p.Owner.Name
}

func ruleOwnerName(o *Object) string {
	if o.Rule == nil || o.Rule.Table == nil {
		return ""
	}
	return o.Rule.Table.Name
}

func (c *Comparator) compareFunctionTail(a, b *Object) int {
	fa, fb := a.Function, b.Function
	if fa == nil || fb == nil {
		return 0
	}
	if d := fa.Arity - fb.Arity; d != 0 {
		return d
	}
	n := fa.Arity
	if len(fa.ArgTypeOIDs) < n {
		n = len(fa.ArgTypeOIDs)
	}
	if len(fb.ArgTypeOIDs) < n {
		n = len(fb.ArgTypeOIDs)
	}
	for i := 0; i < n; i++ {
		if d := c.compareTypeOID(fa.ArgTypeOIDs[i], fb.ArgTypeOIDs[i]); d != 0 {
			return d
		}
	}
	return 0
}

// oprKindRank orders prefix < postfix < infix, per spec: "reversed
// oprkind (so 'l' prefix < 'r' postfix < 'b' infix)".
func oprKindRank(k byte) int {
	switch k {
	case 'l':
		return 0
	case 'r':
		return 1
	case 'b':
		return 2
	default:
		return 3
	}
}

func (c *Comparator) compareOperatorTail(a, b *Object) int {
	oa, ob := a.Operator, b.Operator
	if oa == nil || ob == nil {
		return 0
	}
	if d := oprKindRank(oa.OprKind) - oprKindRank(ob.OprKind); d != 0 {
		return d
	}
	if d := c.compareTypeOID(oa.LeftType, ob.LeftType); d != 0 {
		return d
	}
	return c.compareTypeOID(oa.RightType, ob.RightType)
}

// compareTypeOID recursively compares two types by (schema, name)
// looked up through the registry. A failed lookup is inconclusive.
func (c *Comparator) compareTypeOID(a, b uint32) int {
	if a == b {
		return 0
	}
	if c.reg == nil {
		return 0
	}
	ta, okA := c.reg.FindTypeByOID(a)
	tb, okB := c.reg.FindTypeByOID(b)
	if !okA || !okB {
		return 0
	}
	if d := compareSchema(ta.Namespace, tb.Namespace); d != 0 {
		return d
	}
	return compareStrings(ta.Name, tb.Name)
}

func (c *Comparator) compareAMTail(a, b uint32) int {
	if a == b {
		return 0
	}
	if c.reg == nil {
		return 0
	}
	ama, okA := c.reg.FindAccessMethodByOID(a)
	amb, okB := c.reg.FindAccessMethodByOID(b)
	if !okA || !okB {
		return 0
	}
	return compareStrings(ama.Name, amb.Name)
}

// compareConstraintTail sorts domain-carrying constraints before
// table-carrying ones (mirroring CREATE DOMAIN < CREATE TABLE), then
// by the owning object's name.
func (c *Comparator) compareConstraintTail(a, b *Object) int {
	ca, cb := a.Constraint, b.Constraint
	if ca == nil || cb == nil {
		return 0
	}
	aIsDomain := ca.Domain != nil
	bIsDomain := cb.Domain != nil
	if aIsDomain != bIsDomain {
		if aIsDomain {
			return -1
		}
		return 1
	}
	return compareStrings(constraintOwnerName(ca), constraintOwnerName(cb))
}

func constraintOwnerName(c *ConstraintPayload) string {
	if c.Domain != nil {
		return c.Domain.Name
	}
	if c.Table != nil {
		return c.Table.Name
	}
	return ""
}

// SortByTypeName returns a new slice, stably sorted by the type/name
// comparator. It does not consult the dependency graph.
func SortByTypeName(objs []*Object, reg *Registry) []*Object {
	out := make([]*Object, len(objs))
	copy(out, objs)
	cmp := NewComparator(reg)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp.Less(out[i], out[j])
	})
	return out
}
