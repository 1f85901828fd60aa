package catalog

import "fmt"

// Registry indexes the full universe of dump objects known to a run,
// independent of whatever subset is handed to the sort entry points.
// It is the only place edges are mutated; callers must not touch
// Object.Dependencies directly once a Registry owns the object.
type Registry struct {
	byDumpID  map[int]*Object
	byTypeOID map[uint32]*Object
	byAMOID   map[uint32]*Object
	maxDumpID int
}

// NewRegistry builds a registry over allObjects and validates that
// every dumpId is >= 1 and unique and that every dependency target
// lies in [1, maxDumpID]. It does not check that the dumpIds are
// dense; gaps in the range are accepted.
func NewRegistry(allObjects []*Object) (*Registry, error) {
	r := &Registry{
		byDumpID:  make(map[int]*Object, len(allObjects)),
		byTypeOID: make(map[uint32]*Object),
		byAMOID:   make(map[uint32]*Object),
	}

	for _, obj := range allObjects {
		if obj.DumpID < 1 {
			return nil, fmt.Errorf("catalog: object %q has invalid dumpId %d", obj.Name, obj.DumpID)
		}
		if _, dup := r.byDumpID[obj.DumpID]; dup {
			return nil, fmt.Errorf("catalog: duplicate dumpId %d", obj.DumpID)
		}
		r.byDumpID[obj.DumpID] = obj
		if obj.DumpID > r.maxDumpID {
			r.maxDumpID = obj.DumpID
		}
		if obj.Kind == KindType || obj.Kind == KindShellType {
			if obj.CatalogID.OID != 0 {
				r.byTypeOID[obj.CatalogID.OID] = obj
			}
		}
		if obj.Kind == KindAccessMethod {
			if obj.CatalogID.OID != 0 {
				r.byAMOID[obj.CatalogID.OID] = obj
			}
		}
	}

	for _, obj := range allObjects {
		for _, dep := range obj.Dependencies {
			if dep < 1 || dep > r.maxDumpID {
				return nil, fmt.Errorf("catalog: object %q (dumpId %d) has out-of-range dependency %d", obj.Name, obj.DumpID, dep)
			}
		}
	}

	return r, nil
}

// MaxDumpID returns the highest dumpId known to the registry.
func (r *Registry) MaxDumpID() int {
	return r.maxDumpID
}

// FindByDumpID looks up an object by its dumpId.
func (r *Registry) FindByDumpID(id int) (*Object, bool) {
	obj, ok := r.byDumpID[id]
	return obj, ok
}

// FindTypeByOID looks up a type (or shell type) object by catalog OID.
func (r *Registry) FindTypeByOID(oid uint32) (*Object, bool) {
	obj, ok := r.byTypeOID[oid]
	return obj, ok
}

// FindAccessMethodByOID looks up an access-method object by catalog OID.
func (r *Registry) FindAccessMethodByOID(oid uint32) (*Object, bool) {
	obj, ok := r.byAMOID[oid]
	return obj, ok
}

// AddDependency records that a must be emitted after the object with
// targetDumpID. A no-op if the edge already exists.
func (r *Registry) AddDependency(a *Object, targetDumpID int) {
	if a.HasDependency(targetDumpID) {
		return
	}
	a.Dependencies = append(a.Dependencies, targetDumpID)
}

// RemoveDependency drops any edge from a to targetDumpID.
func (r *Registry) RemoveDependency(a *Object, targetDumpID int) {
	kept := a.Dependencies[:0]
	for _, id := range a.Dependencies {
		if id != targetDumpID {
			kept = append(kept, id)
		}
	}
	a.Dependencies = kept
}
