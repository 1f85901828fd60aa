package dumpsort

import "github.com/pgschema/pgdumpsort/internal/catalog"

// topologicalSort implements spec §4.3: a Kahn-style sort run in
// reverse over the already type/name-sorted input, filling the output
// right-to-left by always choosing the highest-input-index candidate
// whose remaining before-constraints have reached zero. This is the
// linearization that disturbs the preferred order least, since the
// latest-permissible slot for an object is unique up to cycles while
// earliest-permissible slots accumulate drift from prerequisites.
//
// On success, sorted has the same length as objs and remainder is
// empty. On failure, sorted is nil and remainder holds the objects
// that participate in or are downstream of at least one cycle.
func topologicalSort(objs []*catalog.Object, maxDumpID int) (sorted []*catalog.Object, remainder []*catalog.Object, err error) {
	if len(objs) == 0 {
		return nil, nil, nil
	}

	idToIndex := make(map[int]int, len(objs))
	for i, o := range objs {
		if o.DumpID < 1 || o.DumpID > maxDumpID {
			return nil, nil, fatalf("object %q has dumpId %d outside [1, %d]", o.Name, o.DumpID, maxDumpID)
		}
		idToIndex[o.DumpID] = i
	}
	for _, o := range objs {
		for _, dep := range o.Dependencies {
			if dep < 1 || dep > maxDumpID {
				return nil, nil, fatalf("object %q (dumpId %d) depends on out-of-range id %d", o.Name, o.DumpID, dep)
			}
		}
	}

	// beforeConstraints[id] = count of input objects that depend on
	// the object with that dumpId (indegree when edges are inverted
	// for emission). Only ids belonging to objects in the input are
	// ever keyed; edges to ids outside the input contribute to no
	// counter, per the §4.3 edge case.
	beforeConstraints := make(map[int]int, len(objs))
	for _, o := range objs {
		if _, ok := beforeConstraints[o.DumpID]; !ok {
			beforeConstraints[o.DumpID] = 0
		}
	}
	for _, o := range objs {
		for _, dep := range o.Dependencies {
			if _, ok := idToIndex[dep]; ok {
				beforeConstraints[dep]++
			}
		}
	}

	var seed []int
	for i, o := range objs {
		if beforeConstraints[o.DumpID] == 0 {
			seed = append(seed, i)
		}
	}
	h := newIndexHeap(seed)

	output := make([]*catalog.Object, len(objs))
	placed := make([]bool, len(objs))
	next := len(objs) - 1

	for h.Len() > 0 {
		i := h.popMax()
		output[next] = objs[i]
		placed[i] = true
		next--

		for _, dep := range objs[i].Dependencies {
			depIdx, ok := idToIndex[dep]
			if !ok {
				continue
			}
			beforeConstraints[dep]--
			if beforeConstraints[dep] == 0 && !placed[depIdx] {
				h.pushIndex(depIdx)
			}
		}
	}

	if next == -1 {
		return output, nil, nil
	}

	for i, o := range objs {
		if !placed[i] {
			remainder = append(remainder, o)
		}
	}
	return nil, remainder, nil
}
