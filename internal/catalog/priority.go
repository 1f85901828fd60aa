package catalog

// priorityTable is the static mapping from kind to coarse emission
// priority described in spec §4.1. It must carry an entry for every
// kind; init panics otherwise, mirroring the original's static assert.
//
// Casts sort before functions so the topological sort hoists functions
// required by casts (and transitively the views that depend on those
// functions) above their natural position, without moving every view
// above every function. Event triggers sort next-to-last and
// refresh-matview sorts last within post-data: both must never fire
// against mid-restore state.
var priorityTable = map[Kind]int{
	KindSchema:   1,
	KindProcLang: 2,
	KindCollation: 3,
	KindTransform: 4,
	KindExtension: 5,

	KindType:      6,
	KindShellType: 6,

	KindCast: 7,

	KindFunction:  8,
	KindAggregate: 9,

	KindAccessMethod: 10,
	KindOperator:     11,

	KindOpFamily: 12,
	KindOpClass:  12,

	KindConversion: 13,

	KindTSParser:   14,
	KindTSTemplate: 15,
	KindTSDict:     16,
	KindTSConfig:   17,

	KindFDW:           18,
	KindForeignServer: 19,

	KindTable:       20,
	KindTableAttach: 21,
	KindDummyType:   22,
	KindAttrDef:     23,

	KindPreDataBoundary: 24,

	KindTableData:       25,
	KindSequenceSet:     26,
	KindLargeObject:     27,
	KindLargeObjectData: 28,
	KindRelStats:        29,

	KindPostDataBoundary: 30,

	KindConstraint:   31,
	KindFKConstraint: 32,
	KindIndex:        33,
	KindIndexAttach:  34,
	KindStatsExt:     35,
	KindRule:         36,
	KindTrigger:      37,
	KindPolicy:       38,

	KindPublication:              39,
	KindPublicationRel:           40,
	KindPublicationTableInSchema: 41,
	KindSubscription:             42,
	KindSubscriptionRel:          43,
	KindDefaultACL:               44,

	KindEventTrigger:   45,
	KindRefreshMatView: 46,
}

func init() {
	if len(priorityTable) != int(kindCount) {
		panic("catalog: priority table does not have an entry for every object kind")
	}
	for k := Kind(0); k < kindCount; k++ {
		if _, ok := priorityTable[k]; !ok {
			panic("catalog: priority table missing entry for kind " + k.String())
		}
	}
}

// Priority returns the coarse emission priority for k.
func Priority(k Kind) int {
	return priorityTable[k]
}

// IsPreData, IsData and IsPostData classify a priority value into one
// of the three emission sections, split by the two boundary priorities.
func IsPreData(p int) bool  { return p < priorityTable[KindPreDataBoundary] }
func IsData(p int) bool {
	return p > priorityTable[KindPreDataBoundary] && p < priorityTable[KindPostDataBoundary]
}
func IsPostData(p int) bool { return p > priorityTable[KindPostDataBoundary] }
