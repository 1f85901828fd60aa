// Package catalog models the dump objects that flow through the
// ordering core: their kinds, payloads, dependency edges, and the
// registry used to look them up by dumpId or catalog OID.
package catalog

// Kind identifies the variant of a dump object. KindSchema is the
// zero value and the first kind; kindCount marks the end of the list.
type Kind int

const (
	KindSchema Kind = iota
	KindProcLang
	KindCollation
	KindTransform
	KindExtension
	KindType
	KindShellType
	KindCast
	KindFunction
	KindAggregate
	KindAccessMethod
	KindOperator
	KindOpFamily
	KindOpClass
	KindConversion
	KindTSParser
	KindTSTemplate
	KindTSDict
	KindTSConfig
	KindFDW
	KindForeignServer
	KindTable
	KindTableAttach
	KindDummyType
	KindAttrDef
	KindPreDataBoundary

	KindTableData
	KindSequenceSet
	KindLargeObject
	KindLargeObjectData
	KindRelStats
	KindPostDataBoundary

	KindConstraint
	KindFKConstraint
	KindIndex
	KindIndexAttach
	KindStatsExt
	KindRule
	KindTrigger
	KindPolicy
	KindPublication
	KindPublicationRel
	KindPublicationTableInSchema
	KindSubscription
	KindSubscriptionRel
	KindDefaultACL
	KindEventTrigger
	KindRefreshMatView

	kindCount
)

var kindNames = map[Kind]string{
	KindSchema:                   "SCHEMA",
	KindProcLang:                 "PROCEDURAL LANGUAGE",
	KindCollation:                "COLLATION",
	KindTransform:                "TRANSFORM",
	KindExtension:                "EXTENSION",
	KindType:                     "TYPE",
	KindShellType:                "SHELL TYPE",
	KindCast:                     "CAST",
	KindFunction:                 "FUNCTION",
	KindAggregate:                "AGGREGATE",
	KindAccessMethod:             "ACCESS METHOD",
	KindOperator:                 "OPERATOR",
	KindOpFamily:                 "OPERATOR FAMILY",
	KindOpClass:                  "OPERATOR CLASS",
	KindConversion:               "CONVERSION",
	KindTSParser:                 "TEXT SEARCH PARSER",
	KindTSTemplate:               "TEXT SEARCH TEMPLATE",
	KindTSDict:                   "TEXT SEARCH DICTIONARY",
	KindTSConfig:                 "TEXT SEARCH CONFIGURATION",
	KindFDW:                      "FOREIGN DATA WRAPPER",
	KindForeignServer:            "FOREIGN SERVER",
	KindTable:                    "TABLE",
	KindTableAttach:              "TABLE ATTACH",
	KindDummyType:                "DUMMY TYPE",
	KindAttrDef:                  "DEFAULT",
	KindPreDataBoundary:          "PRE-DATA BOUNDARY",
	KindTableData:                "TABLE DATA",
	KindSequenceSet:              "SEQUENCE SET",
	KindLargeObject:              "BLOB",
	KindLargeObjectData:          "BLOB DATA",
	KindRelStats:                 "STATISTICS DATA",
	KindPostDataBoundary:         "POST-DATA BOUNDARY",
	KindConstraint:               "CONSTRAINT",
	KindFKConstraint:             "FK CONSTRAINT",
	KindIndex:                    "INDEX",
	KindIndexAttach:              "INDEX ATTACH",
	KindStatsExt:                 "STATISTICS",
	KindRule:                     "RULE",
	KindTrigger:                  "TRIGGER",
	KindPolicy:                   "POLICY",
	KindPublication:              "PUBLICATION",
	KindPublicationRel:           "PUBLICATION TABLE",
	KindPublicationTableInSchema: "PUBLICATION TABLES IN SCHEMA",
	KindSubscription:             "SUBSCRIPTION",
	KindSubscriptionRel:          "SUBSCRIPTION TABLE",
	KindDefaultACL:               "DEFAULT ACL",
	KindEventTrigger:             "EVENT TRIGGER",
	KindRefreshMatView:           "REFRESH MATERIALIZED VIEW",
}

// String renders the kind the way pg_dump's describeDumpableObject does.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN OBJECT"
}

// IsBoundary reports whether k is one of the two section-boundary pseudo-kinds.
func (k Kind) IsBoundary() bool {
	return k == KindPreDataBoundary || k == KindPostDataBoundary
}
