package loader

import (
	"strings"
	"testing"

	"github.com/pgschema/pgdumpsort/internal/catalog"
)

func TestLoadBasicGraph(t *testing.T) {
	doc := `{
		"pre_boundary_dump_id": 10,
		"post_boundary_dump_id": 20,
		"objects": [
			{"dump_id": 1, "kind": "SCHEMA", "name": "public"},
			{"dump_id": 2, "kind": "TABLE", "name": "orders", "namespace": "public", "rel_kind": "r", "dependencies": [1]},
			{"dump_id": 3, "kind": "INDEX", "name": "orders_pkey", "namespace": "public", "dependencies": [2]}
		]
	}`

	objs, reg, pre, post, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(objs) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(objs))
	}
	if pre != 10 || post != 20 {
		t.Fatalf("pre/post boundary ids = %d/%d, want 10/20", pre, post)
	}

	table, ok := reg.FindByDumpID(2)
	if !ok {
		t.Fatalf("expected to find dumpId 2")
	}
	if table.Namespace == nil || table.Namespace.Name != "public" {
		t.Fatalf("table namespace not resolved: %+v", table.Namespace)
	}
	if table.Table == nil || table.Table.RelKind != 'r' {
		t.Fatalf("table payload not attached correctly: %+v", table.Table)
	}
	if !table.HasDependency(1) {
		t.Fatalf("table should depend on its schema")
	}
}

func TestLoadResolvesTypeShellLink(t *testing.T) {
	doc := `{
		"objects": [
			{"dump_id": 1, "kind": "SHELL TYPE", "name": "_box"},
			{"dump_id": 2, "kind": "TYPE", "name": "box", "shell_type_dump_id": 1}
		]
	}`

	objs, _, _, _, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var typ *catalog.Object
	for _, o := range objs {
		if o.Kind == catalog.KindType {
			typ = o
		}
	}
	if typ == nil || typ.Type.ShellType == nil || typ.Type.ShellType.DumpID != 1 {
		t.Fatalf("type's shell type was not resolved")
	}
}

func TestLoadScansFunctionBodyForCallDependencies(t *testing.T) {
	doc := `{
		"objects": [
			{"dump_id": 1, "kind": "SCHEMA", "name": "public"},
			{"dump_id": 2, "kind": "FUNCTION", "name": "normalize", "namespace": "public"},
			{"dump_id": 3, "kind": "FUNCTION", "name": "ingest", "namespace": "public",
			 "sql_body": "SELECT public.normalize(x) FROM t"}
		]
	}`

	objs, reg, _, _, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_ = objs

	ingest, ok := reg.FindByDumpID(3)
	if !ok {
		t.Fatalf("expected to find dumpId 3")
	}
	if !ingest.HasDependency(2) {
		t.Fatalf("ingest should depend on normalize, scanned from its sql_body; deps=%v", ingest.Dependencies)
	}
}

func TestLoadScansViewQueryForTableDependencies(t *testing.T) {
	doc := `{
		"objects": [
			{"dump_id": 1, "kind": "SCHEMA", "name": "public"},
			{"dump_id": 2, "kind": "TABLE", "name": "orders", "namespace": "public", "rel_kind": "r"},
			{"dump_id": 3, "kind": "TABLE", "name": "orders_view", "namespace": "public", "rel_kind": "v",
			 "view_query": "SELECT * FROM public.orders"}
		]
	}`

	_, reg, _, _, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	view, ok := reg.FindByDumpID(3)
	if !ok {
		t.Fatalf("expected to find dumpId 3")
	}
	if !view.HasDependency(2) {
		t.Fatalf("orders_view should depend on orders, scanned from its view_query; deps=%v", view.Dependencies)
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	doc := `{"objects": [{"dump_id": 1, "kind": "NONSENSE", "name": "x"}]}`
	if _, _, _, _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected an error for an unrecognized kind")
	}
}

func TestLoadRejectsDanglingNamespace(t *testing.T) {
	doc := `{"objects": [{"dump_id": 1, "kind": "TABLE", "name": "t", "namespace": "missing"}]}`
	if _, _, _, _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected an error for a namespace that doesn't resolve to any SCHEMA object")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, _, _, _, err := Load(strings.NewReader(`{not json`)); err == nil {
		t.Fatalf("expected a decode error")
	}
}
