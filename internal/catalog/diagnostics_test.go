package catalog

import (
	"strings"
	"testing"
)

func TestDescribeTable(t *testing.T) {
	o := newObj(5, KindTable, "public", "orders")
	o.CatalogID.OID = 16420

	got := Describe(o)
	if !strings.Contains(got, "TABLE") || !strings.Contains(got, `"public"."orders"`) {
		t.Fatalf("Describe(table) = %q, missing kind or quoted name", got)
	}
	if !strings.Contains(got, "ID 5") || !strings.Contains(got, "OID 16420") {
		t.Fatalf("Describe(table) = %q, missing dumpId or OID", got)
	}
}

func TestDescribeBoundaryHasNoOID(t *testing.T) {
	o := &Object{DumpID: 1, Kind: KindPreDataBoundary}
	got := Describe(o)
	if strings.Contains(got, "OID") {
		t.Fatalf("Describe(boundary) = %q, boundaries carry no catalog OID", got)
	}
}

func TestDescribeQuotesIdentifiersNeedingIt(t *testing.T) {
	o := newObj(1, KindTable, "public", "Mixed Case")
	got := Describe(o)
	if !strings.Contains(got, `"Mixed Case"`) {
		t.Fatalf("Describe() = %q, expected the mixed-case name quoted", got)
	}
}

func TestDescribeUnnamedObjectOmitsName(t *testing.T) {
	o := &Object{DumpID: 7, Kind: KindRefreshMatView}
	got := Describe(o)
	if strings.Contains(got, `""`) {
		t.Fatalf("Describe() = %q, an empty name should not be rendered quoted", got)
	}
}
