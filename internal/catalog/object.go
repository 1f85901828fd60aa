package catalog

// DumpComponent is a bitmask of the pieces of an object that are to be
// emitted: definition, data, ACL, comments, security labels.
type DumpComponent uint8

const (
	DumpDefinition DumpComponent = 1 << iota
	DumpData
	DumpACL
	DumpComment
	DumpSecurityLabel
)

// Has reports whether every bit in want is set in d.
func (d DumpComponent) Has(want DumpComponent) bool {
	return d&want == want
}

// CatalogID is the catalog identity used as the comparator's
// last-resort tie-breaker.
type CatalogID struct {
	OID      uint32
	TableOID uint32
}

// Object is a single dump unit. Only the payload field matching Kind
// is populated; the rest are nil. This is the tagged-union shape the
// design favors over the original's base-plus-downcast pattern.
type Object struct {
	DumpID       int
	Kind         Kind
	Name         string
	Namespace    *Object // owning schema, nil if schema-less
	CatalogID    CatalogID
	Dependencies []int
	Dump         DumpComponent

	Function      *FunctionPayload
	Operator      *OperatorPayload
	OpClass       *OpClassPayload
	OpFamily      *OpFamilyPayload
	Collation     *CollationPayload
	Type          *TypePayload
	Table         *TablePayload
	AttrDef       *AttrDefPayload
	Index         *IndexPayload
	Constraint    *ConstraintPayload
	Rule          *RulePayload
	Trigger       *RelatedPayload
	Policy        *RelatedPayload
	PublicationRel *PublicationRelPayload
	RelStats      *RelStatsPayload
}

// FunctionPayload is the kind-specific tail for functions and aggregates.
type FunctionPayload struct {
	ArgTypeOIDs  []uint32
	Arity        int
	PostponedDef bool
}

// OperatorPayload is the kind-specific tail for operators.
type OperatorPayload struct {
	OprKind   byte // 'l' (prefix), 'r' (postfix), 'b' (infix)
	LeftType  uint32
	RightType uint32
}

// OpClassPayload / OpFamilyPayload carry the owning access method,
// used by the comparator's natural-key tail and resolved through the
// registry rather than stored as a name directly.
type OpClassPayload struct {
	AccessMethodOID uint32
}

type OpFamilyPayload struct {
	AccessMethodOID uint32
}

// CollationPayload carries the encoding used to break name ties.
type CollationPayload struct {
	Encoding int
}

// TypePayload links a type to its shell-type counterpart (if any) for
// the loop-repair type<->function pattern.
type TypePayload struct {
	IsDomain       bool
	BaseTypeOID    uint32 // for domains
	ShellType      *Object
	CompletingType *Object
}

// TablePayload is the kind-specific tail for tables and materialized views.
type TablePayload struct {
	RelKind      byte // 'r' base table, 'v' view, 'm' matview, 'p' partitioned, ...
	DummyView    bool
	PostponedDef bool
}

// AttrDefPayload is the kind-specific tail for column default objects.
type AttrDefPayload struct {
	AdNum    int
	Separate bool
	Table    *Object
}

// IndexPayload is the kind-specific tail for indexes.
type IndexPayload struct {
	ParentIndexOID uint32
}

// ConstraintPayload is the kind-specific tail for constraints, FK
// constraints included.
type ConstraintPayload struct {
	ContType byte // 'c' check, 'n' not-null, 'f' foreign key, 'p' primary key, 'u' unique, 'x' exclusion
	Table    *Object
	Domain   *Object
	Separate bool
}

// RulePayload is the kind-specific tail for rewrite rules.
type RulePayload struct {
	EvType    byte // '1' == ON SELECT
	IsInstead bool
	Table     *Object
	Separate  bool
}

// RelatedPayload covers kinds whose only kind-specific tail is "the
// name of the object I'm attached to" (policies, triggers).
type RelatedPayload struct {
	Owner *Object
}

// PublicationRelPayload is the kind-specific tail for publication-rel
// and publication-table-in-schema objects.
type PublicationRelPayload struct {
	Publication string
}

// RelStatsPayload is the kind-specific tail for relation statistics
// (KindRelStats) objects, such as those attached to a matview. PostponedDef mirrors
// TablePayload.PostponedDef and FunctionPayload.PostponedDef: set when
// loop repair defers emitting the stats until after the boundary it
// was cut loose from.
type RelStatsPayload struct {
	PostponedDef bool
}

// HasDependency reports whether o already depends on targetDumpID.
func (o *Object) HasDependency(targetDumpID int) bool {
	for _, id := range o.Dependencies {
		if id == targetDumpID {
			return true
		}
	}
	return false
}
