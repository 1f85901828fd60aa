package catalog

import "testing"

func TestNewRegistryRejectsDuplicateDumpID(t *testing.T) {
	objs := []*Object{
		newObj(1, KindTable, "public", "a"),
		newObj(1, KindTable, "public", "b"),
	}
	if _, err := NewRegistry(objs); err == nil {
		t.Fatalf("expected an error for duplicate dumpId, got nil")
	}
}

func TestNewRegistryRejectsOutOfRangeDependency(t *testing.T) {
	a := newObj(1, KindTable, "public", "a")
	a.Dependencies = []int{42}
	if _, err := NewRegistry([]*Object{a}); err == nil {
		t.Fatalf("expected an error for an out-of-range dependency, got nil")
	}
}

func TestNewRegistryRejectsInvalidDumpID(t *testing.T) {
	a := newObj(0, KindTable, "public", "a")
	if _, err := NewRegistry([]*Object{a}); err == nil {
		t.Fatalf("expected an error for dumpId 0, got nil")
	}
}

func TestRegistryLookups(t *testing.T) {
	typ := newObj(1, KindType, "public", "mytype")
	typ.CatalogID.OID = 100
	am := newObj(2, KindAccessMethod, "", "btree")
	am.CatalogID.OID = 200
	tbl := newObj(3, KindTable, "public", "t")

	reg, err := NewRegistry([]*Object{typ, am, tbl})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if reg.MaxDumpID() != 3 {
		t.Fatalf("MaxDumpID() = %d, want 3", reg.MaxDumpID())
	}
	if got, ok := reg.FindByDumpID(3); !ok || got != tbl {
		t.Fatalf("FindByDumpID(3) = %v, %v; want tbl, true", got, ok)
	}
	if _, ok := reg.FindByDumpID(99); ok {
		t.Fatalf("FindByDumpID(99) should not be found")
	}
	if got, ok := reg.FindTypeByOID(100); !ok || got != typ {
		t.Fatalf("FindTypeByOID(100) = %v, %v; want typ, true", got, ok)
	}
	if got, ok := reg.FindAccessMethodByOID(200); !ok || got != am {
		t.Fatalf("FindAccessMethodByOID(200) = %v, %v; want am, true", got, ok)
	}
}

func TestAddDependencyIsIdempotent(t *testing.T) {
	a := newObj(1, KindTable, "public", "a")
	b := newObj(2, KindTable, "public", "b")
	reg, err := NewRegistry([]*Object{a, b})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	reg.AddDependency(a, b.DumpID)
	reg.AddDependency(a, b.DumpID)
	if len(a.Dependencies) != 1 {
		t.Fatalf("AddDependency should be a no-op on a repeated edge, got %v", a.Dependencies)
	}
}

func TestRemoveDependency(t *testing.T) {
	a := newObj(1, KindTable, "public", "a")
	a.Dependencies = []int{2, 3, 4}
	reg := &Registry{}

	reg.RemoveDependency(a, 3)
	want := []int{2, 4}
	if len(a.Dependencies) != len(want) {
		t.Fatalf("Dependencies = %v, want %v", a.Dependencies, want)
	}
	for i, v := range want {
		if a.Dependencies[i] != v {
			t.Fatalf("Dependencies = %v, want %v", a.Dependencies, want)
		}
	}
}
