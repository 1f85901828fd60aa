package dumpsort

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pgschema/pgdumpsort/internal/catalog"
)

func dumpIDsOf(sorted []*catalog.Object) []int {
	out := make([]int, len(sorted))
	for i, o := range sorted {
		out[i] = o.DumpID
	}
	return out
}

func TestSortDependencyAwareEmptyInput(t *testing.T) {
	sorted, warnings, err := SortDependencyAware(nil, nil, 0, 0)
	if err != nil || sorted != nil || warnings != nil {
		t.Fatalf("empty input should return nil, nil, nil; got %v, %v, %v", sorted, warnings, err)
	}
}

func TestSortDependencyAwareAcyclicGraph(t *testing.T) {
	schema := &catalog.Object{DumpID: 1, Kind: catalog.KindSchema, Name: "public"}
	table := &catalog.Object{DumpID: 2, Kind: catalog.KindTable, Name: "t", Namespace: schema, Dependencies: []int{1}}
	idx := &catalog.Object{DumpID: 3, Kind: catalog.KindIndex, Name: "t_pkey", Namespace: schema, Index: &catalog.IndexPayload{}, Dependencies: []int{2}}

	objs := []*catalog.Object{schema, table, idx}
	reg, err := catalog.NewRegistry(objs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	sorted, warnings, err := SortDependencyAware(objs, reg, 0, 0)
	if err != nil {
		t.Fatalf("SortDependencyAware: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("an acyclic graph should not produce warnings, got %v", warnings)
	}
	if len(sorted) != 3 {
		t.Fatalf("expected all 3 objects, got %d", len(sorted))
	}

	order := orderOf(sorted)
	if order[1] >= order[2] || order[2] >= order[3] {
		t.Fatalf("expected schema, table, index order; got %v", order)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, dumpIDsOf(sorted)); diff != "" {
		t.Fatalf("sorted dumpId order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortDependencyAwareRepairsACycle(t *testing.T) {
	shell := &catalog.Object{DumpID: 10, Kind: catalog.KindShellType, Name: "_t"}
	typ := &catalog.Object{DumpID: 1, Kind: catalog.KindType, Name: "t", Type: &catalog.TypePayload{ShellType: shell}}
	fn := &catalog.Object{
		DumpID:       2,
		Kind:         catalog.KindFunction,
		Name:         "t_in",
		Function:     &catalog.FunctionPayload{},
		Dependencies: []int{1},
	}
	typ.Dependencies = []int{2} // the type's full definition needs its I/O function

	objs := []*catalog.Object{shell, typ, fn}
	reg, err := catalog.NewRegistry(objs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	sorted, warnings, err := SortDependencyAware(objs, reg, 0, 0)
	if err != nil {
		t.Fatalf("SortDependencyAware: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("the type/function pattern should resolve without a warning, got %v", warnings)
	}
	if len(sorted) != 3 {
		t.Fatalf("expected all 3 objects in the final order, got %d", len(sorted))
	}
}

func TestSortDependencyAwareUnresolvableLoopStillTerminates(t *testing.T) {
	a := &catalog.Object{DumpID: 1, Kind: catalog.KindExtension, Name: "a", Dependencies: []int{2}}
	b := &catalog.Object{DumpID: 2, Kind: catalog.KindExtension, Name: "b", Dependencies: []int{1}}

	objs := []*catalog.Object{a, b}
	reg, err := catalog.NewRegistry(objs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	sorted, warnings, err := SortDependencyAware(objs, reg, 0, 0)
	if err != nil {
		t.Fatalf("SortDependencyAware: %v", err)
	}
	if len(sorted) != 2 {
		t.Fatalf("expected the sort to terminate with both objects placed, got %d", len(sorted))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning for the unresolved loop, got %d: %v", len(warnings), warnings)
	}
	wantObjs := []int{1, 2}
	gotObjs := dumpIDsOf(warnings[0].Objects)
	if diff := cmp.Diff(wantObjs, gotObjs); diff != "" {
		t.Fatalf("warning object dumpIds mismatch (-want +got):\n%s", diff)
	}
}
