package catalog

import "testing"

func TestPriorityTableCoversEveryKind(t *testing.T) {
	// init() already panics on an incomplete table at package load; this
	// just pins the boundary split points so a future kind addition that
	// forgets to update the boundaries fails loudly here too.
	if !IsPreData(Priority(KindExtension)) {
		t.Fatalf("extension should be pre-data")
	}
	if !IsData(Priority(KindTableData)) {
		t.Fatalf("table data should be classified as data")
	}
	if !IsPostData(Priority(KindIndex)) {
		t.Fatalf("index should be post-data")
	}
	if IsPreData(Priority(KindPreDataBoundary)) || IsData(Priority(KindPreDataBoundary)) || IsPostData(Priority(KindPreDataBoundary)) {
		t.Fatalf("the boundary priorities themselves should fall in none of the three sections")
	}
}

func TestKindString(t *testing.T) {
	if got := KindTable.String(); got != "TABLE" {
		t.Fatalf("KindTable.String() = %q, want TABLE", got)
	}
	if got := Kind(9999).String(); got != "UNKNOWN OBJECT" {
		t.Fatalf("unknown kind should stringify to UNKNOWN OBJECT, got %q", got)
	}
}

func TestKindIsBoundary(t *testing.T) {
	if !KindPreDataBoundary.IsBoundary() || !KindPostDataBoundary.IsBoundary() {
		t.Fatalf("boundary kinds must report IsBoundary true")
	}
	if KindTable.IsBoundary() {
		t.Fatalf("KindTable must not report IsBoundary true")
	}
}
