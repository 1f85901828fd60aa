// Package loader reads the JSON object-and-edge graph the CLI shell
// operates on. It stands in for the catalog introspection spec.md §1
// puts explicitly out of scope: a real dump tool would populate
// catalog.Object values by querying pg_catalog directly, but this repo
// takes them from a snapshot file instead so the ordering core can be
// exercised without a live database.
//
// A snapshot's explicit "dependencies" array only carries whatever
// edges its producer already knew about. Function bodies and view
// queries carried alongside a function/view object are scanned with
// internal/depscan to recover the edges a plain catalog snapshot
// can't express on its own, and those are appended to the same
// Object.Dependencies list before the registry is built.
package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pgschema/pgdumpsort/internal/catalog"
	"github.com/pgschema/pgdumpsort/internal/depscan"
)

// Document is the on-disk shape of a graph snapshot.
type Document struct {
	PreBoundaryDumpID  int          `json:"pre_boundary_dump_id"`
	PostBoundaryDumpID int          `json:"post_boundary_dump_id"`
	Objects            []ObjectDoc  `json:"objects"`
}

// ObjectDoc is the flattened, JSON-friendly form of catalog.Object.
// Every kind-specific field is optional; only the ones relevant to
// ObjectDoc.Kind are expected to be set.
type ObjectDoc struct {
	DumpID       int    `json:"dump_id"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Namespace    string `json:"namespace,omitempty"` // schema name, resolved to the matching KindSchema object
	OID          uint32 `json:"oid,omitempty"`
	TableOID     uint32 `json:"table_oid,omitempty"`
	Dependencies []int  `json:"dependencies,omitempty"`
	Dump         []string `json:"dump,omitempty"` // any of: definition, data, acl, comment, security_label

	ShellTypeDumpID       int    `json:"shell_type_dump_id,omitempty"`
	CompletingTypeDumpID  int    `json:"completing_type_dump_id,omitempty"`
	IsDomain              bool   `json:"is_domain,omitempty"`
	BaseTypeOID           uint32 `json:"base_type_oid,omitempty"`

	ArgTypeOIDs  []uint32 `json:"arg_type_oids,omitempty"`
	Arity        int      `json:"arity,omitempty"`
	PostponedDef bool     `json:"postponed_def,omitempty"` // also used by KindRelStats
	SQLBody      string   `json:"sql_body,omitempty"`      // function/aggregate body, scanned by internal/depscan for call edges

	OprKind   string `json:"oper_kind,omitempty"` // "l", "r", or "b"
	LeftType  uint32 `json:"left_type_oid,omitempty"`
	RightType uint32 `json:"right_type_oid,omitempty"`

	AccessMethodOID uint32 `json:"access_method_oid,omitempty"`
	Encoding        int    `json:"encoding,omitempty"`

	RelKind   string `json:"rel_kind,omitempty"` // "r", "v", "m", "p", ...
	DummyView bool   `json:"dummy_view,omitempty"`
	ViewQuery string `json:"view_query,omitempty"` // the defining SELECT, for views/matviews; scanned by internal/depscan for table edges

	AdNum          int    `json:"adnum,omitempty"`
	TableDumpID    int    `json:"table_dump_id,omitempty"`
	DomainDumpID   int    `json:"domain_dump_id,omitempty"`
	OwnerDumpID    int    `json:"owner_dump_id,omitempty"`
	ParentIndexOID uint32 `json:"parent_index_oid,omitempty"`
	ContType       string `json:"con_type,omitempty"` // "c", "n", "f", "p", "u", "x"
	Separate       bool   `json:"separate,omitempty"`
	EvType         string `json:"ev_type,omitempty"` // "1" for ON SELECT
	IsInstead      bool   `json:"is_instead,omitempty"`
	Publication    string `json:"publication,omitempty"`
}

var dumpComponentsByName = map[string]catalog.DumpComponent{
	"definition":      catalog.DumpDefinition,
	"data":            catalog.DumpData,
	"acl":             catalog.DumpACL,
	"comment":         catalog.DumpComment,
	"security_label":  catalog.DumpSecurityLabel,
}

var kindsByName = buildKindsByName()

func buildKindsByName() map[string]catalog.Kind {
	m := make(map[string]catalog.Kind)
	for k := catalog.KindSchema; ; k++ {
		name := k.String()
		if name == "UNKNOWN OBJECT" {
			break
		}
		m[name] = k
	}
	return m
}

// Load parses a Document from r and builds the catalog.Object graph
// plus a Registry over it, resolving every cross-reference (namespace,
// shell/completing type, owning table/domain, trigger/policy owner)
// by dumpId or schema name in a second pass once every object exists.
// A parent index is kept as the raw OID from parent_index_oid.
func Load(r io.Reader) (objs []*catalog.Object, reg *catalog.Registry, preBoundaryID, postBoundaryID int, err error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, 0, 0, fmt.Errorf("loader: decode: %w", err)
	}

	byDumpID := make(map[int]*catalog.Object, len(doc.Objects))
	schemaByName := make(map[string]*catalog.Object)
	objs = make([]*catalog.Object, 0, len(doc.Objects))

	for _, d := range doc.Objects {
		kind, ok := kindsByName[d.Kind]
		if !ok {
			return nil, nil, 0, 0, fmt.Errorf("loader: object %q: unknown kind %q", d.Name, d.Kind)
		}
		o := &catalog.Object{
			DumpID:       d.DumpID,
			Kind:         kind,
			Name:         d.Name,
			CatalogID:    catalog.CatalogID{OID: d.OID, TableOID: d.TableOID},
			Dependencies: append([]int(nil), d.Dependencies...),
		}
		for _, name := range d.Dump {
			comp, ok := dumpComponentsByName[name]
			if !ok {
				return nil, nil, 0, 0, fmt.Errorf("loader: object %q: unknown dump component %q", d.Name, name)
			}
			o.Dump |= comp
		}
		byDumpID[o.DumpID] = o
		objs = append(objs, o)
		if kind == catalog.KindSchema {
			schemaByName[o.Name] = o
		}
	}

	for i, d := range doc.Objects {
		o := objs[i]
		if d.Namespace != "" {
			ns, ok := schemaByName[d.Namespace]
			if !ok {
				return nil, nil, 0, 0, fmt.Errorf("loader: object %q: unknown namespace %q", d.Name, d.Namespace)
			}
			o.Namespace = ns
		}
		if err := attachPayload(o, d, byDumpID); err != nil {
			return nil, nil, 0, 0, err
		}
	}

	funcIndex := newNameIndex(objs, func(o *catalog.Object) bool {
		return o.Kind == catalog.KindFunction || o.Kind == catalog.KindAggregate
	})
	tableIndex := newNameIndex(objs, func(o *catalog.Object) bool {
		return o.Kind == catalog.KindTable
	})

	for i, d := range doc.Objects {
		o := objs[i]
		switch o.Kind {
		case catalog.KindFunction, catalog.KindAggregate:
			if d.SQLBody == "" {
				continue
			}
			refs, err := depscan.FunctionCalls(d.SQLBody)
			if err != nil {
				return nil, nil, 0, 0, fmt.Errorf("loader: object %q: scanning function body: %w", d.Name, err)
			}
			addScannedDependencies(o, refs, funcIndex)

		case catalog.KindTable:
			if d.ViewQuery == "" {
				continue
			}
			refs, err := depscan.TableReferences(d.ViewQuery)
			if err != nil {
				return nil, nil, 0, 0, fmt.Errorf("loader: object %q: scanning view query: %w", d.Name, err)
			}
			addScannedDependencies(o, refs, tableIndex)
		}
	}

	reg, err = catalog.NewRegistry(objs)
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("loader: %w", err)
	}
	return objs, reg, doc.PreBoundaryDumpID, doc.PostBoundaryDumpID, nil
}

// nameIndex resolves a depscan.Reference (a possibly schema-qualified
// name found in a parsed SQL fragment) against the subset of objs
// matching a kind predicate. An unqualified reference may match more
// than one candidate (same name in several schemas); every match gets
// a dependency edge, which costs an extra edge on a false positive but
// never an incorrect order, per depscan's own tolerance for an
// incomplete dependency graph.
type nameIndex struct {
	qualified map[string][]*catalog.Object
	bare      map[string][]*catalog.Object
}

func newNameIndex(objs []*catalog.Object, match func(*catalog.Object) bool) *nameIndex {
	idx := &nameIndex{
		qualified: make(map[string][]*catalog.Object),
		bare:      make(map[string][]*catalog.Object),
	}
	for _, o := range objs {
		if !match(o) {
			continue
		}
		idx.bare[o.Name] = append(idx.bare[o.Name], o)
		if o.Namespace != nil {
			key := o.Namespace.Name + "." + o.Name
			idx.qualified[key] = append(idx.qualified[key], o)
		}
	}
	return idx
}

func (idx *nameIndex) resolve(ref depscan.Reference) []*catalog.Object {
	if ref.Schema != "" {
		return idx.qualified[ref.Schema+"."+ref.Name]
	}
	return idx.bare[ref.Name]
}

// addScannedDependencies appends a dependency edge from o to every
// object idx resolves each of refs to, skipping self-references (a
// recursive function call needs no edge back to its own object) and
// edges o already carries.
func addScannedDependencies(o *catalog.Object, refs []depscan.Reference, idx *nameIndex) {
	for _, ref := range refs {
		for _, target := range idx.resolve(ref) {
			if target.DumpID == o.DumpID {
				continue
			}
			if !o.HasDependency(target.DumpID) {
				o.Dependencies = append(o.Dependencies, target.DumpID)
			}
		}
	}
}

func lookup(byDumpID map[int]*catalog.Object, id int) (*catalog.Object, error) {
	if id == 0 {
		return nil, nil
	}
	o, ok := byDumpID[id]
	if !ok {
		return nil, fmt.Errorf("loader: reference to unknown dumpId %d", id)
	}
	return o, nil
}

func attachPayload(o *catalog.Object, d ObjectDoc, byDumpID map[int]*catalog.Object) error {
	switch o.Kind {
	case catalog.KindType, catalog.KindShellType:
		shell, err := lookup(byDumpID, d.ShellTypeDumpID)
		if err != nil {
			return err
		}
		completing, err := lookup(byDumpID, d.CompletingTypeDumpID)
		if err != nil {
			return err
		}
		o.Type = &catalog.TypePayload{
			IsDomain:       d.IsDomain,
			BaseTypeOID:    d.BaseTypeOID,
			ShellType:      shell,
			CompletingType: completing,
		}

	case catalog.KindFunction, catalog.KindAggregate:
		o.Function = &catalog.FunctionPayload{
			ArgTypeOIDs:  d.ArgTypeOIDs,
			Arity:        d.Arity,
			PostponedDef: d.PostponedDef,
		}

	case catalog.KindOperator:
		o.Operator = &catalog.OperatorPayload{
			OprKind:   firstByte(d.OprKind),
			LeftType:  d.LeftType,
			RightType: d.RightType,
		}

	case catalog.KindOpClass:
		o.OpClass = &catalog.OpClassPayload{AccessMethodOID: d.AccessMethodOID}

	case catalog.KindOpFamily:
		o.OpFamily = &catalog.OpFamilyPayload{AccessMethodOID: d.AccessMethodOID}

	case catalog.KindCollation:
		o.Collation = &catalog.CollationPayload{Encoding: d.Encoding}

	case catalog.KindTable:
		o.Table = &catalog.TablePayload{
			RelKind:      firstByte(d.RelKind),
			DummyView:    d.DummyView,
			PostponedDef: d.PostponedDef,
		}

	case catalog.KindAttrDef:
		table, err := lookup(byDumpID, d.TableDumpID)
		if err != nil {
			return err
		}
		o.AttrDef = &catalog.AttrDefPayload{AdNum: d.AdNum, Separate: d.Separate, Table: table}

	case catalog.KindIndex:
		o.Index = &catalog.IndexPayload{ParentIndexOID: d.ParentIndexOID}

	case catalog.KindConstraint, catalog.KindFKConstraint:
		table, err := lookup(byDumpID, d.TableDumpID)
		if err != nil {
			return err
		}
		domain, err := lookup(byDumpID, d.DomainDumpID)
		if err != nil {
			return err
		}
		o.Constraint = &catalog.ConstraintPayload{
			ContType: firstByte(d.ContType),
			Table:    table,
			Domain:   domain,
			Separate: d.Separate,
		}

	case catalog.KindRule:
		table, err := lookup(byDumpID, d.TableDumpID)
		if err != nil {
			return err
		}
		o.Rule = &catalog.RulePayload{
			EvType:    firstByte(d.EvType),
			IsInstead: d.IsInstead,
			Table:     table,
			Separate:  d.Separate,
		}

	case catalog.KindTrigger:
		owner, err := lookup(byDumpID, d.OwnerDumpID)
		if err != nil {
			return err
		}
		o.Trigger = &catalog.RelatedPayload{Owner: owner}

	case catalog.KindPolicy:
		owner, err := lookup(byDumpID, d.OwnerDumpID)
		if err != nil {
			return err
		}
		o.Policy = &catalog.RelatedPayload{Owner: owner}

	case catalog.KindPublicationRel, catalog.KindPublicationTableInSchema:
		o.PublicationRel = &catalog.PublicationRelPayload{Publication: d.Publication}

	case catalog.KindRelStats:
		o.RelStats = &catalog.RelStatsPayload{PostponedDef: d.PostponedDef}
	}
	return nil
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}
