package catalog

import (
	"fmt"

	"github.com/lib/pq"
)

// Describe renders a single-line human description of obj, in the
// style of pg_dump's describeDumpableObject: the SQL-level kind word,
// the object's name where applicable, its dumpId and catalog OID.
// It is used by the loop-repair warnings (§4.5 rows #15/#16) and by the
// sort command's output, and is never part of the ordering decision itself.
func Describe(obj *Object) string {
	switch obj.Kind {
	case KindPreDataBoundary, KindPostDataBoundary:
		return fmt.Sprintf("%s  (ID %d)", obj.Kind, obj.DumpID)
	case KindCast:
		return fmt.Sprintf("CAST %s  (ID %d OID %d)", quotedName(obj), obj.DumpID, obj.CatalogID.OID)
	case KindOpClass:
		return fmt.Sprintf("OPERATOR CLASS %s  (ID %d OID %d)", quotedName(obj), obj.DumpID, obj.CatalogID.OID)
	case KindOpFamily:
		return fmt.Sprintf("OPERATOR FAMILY %s  (ID %d OID %d)", quotedName(obj), obj.DumpID, obj.CatalogID.OID)
	case KindFunction, KindAggregate:
		return fmt.Sprintf("%s %s  (ID %d OID %d)", obj.Kind, quotedName(obj), obj.DumpID, obj.CatalogID.OID)
	default:
		if obj.Name == "" {
			return fmt.Sprintf("%s  (ID %d OID %d)", obj.Kind, obj.DumpID, obj.CatalogID.OID)
		}
		return fmt.Sprintf("%s %s  (ID %d OID %d)", obj.Kind, quotedName(obj), obj.DumpID, obj.CatalogID.OID)
	}
}

// quotedName renders schema-qualified, identifier-quoted names the
// way pg_dump quotes them in its own diagnostic output.
func quotedName(obj *Object) string {
	if obj.Namespace != nil && obj.Namespace.Name != "" {
		return pq.QuoteIdentifier(obj.Namespace.Name) + "." + pq.QuoteIdentifier(obj.Name)
	}
	return pq.QuoteIdentifier(obj.Name)
}
