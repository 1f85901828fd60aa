package catalog

// newObj builds a minimal object for comparator/registry tests. Tests
// that need a kind-specific payload set the relevant field on the
// returned object directly.
func newObj(id int, kind Kind, schema, name string) *Object {
	o := &Object{
		DumpID: id,
		Kind:   kind,
		Name:   name,
	}
	if schema != "" {
		o.Namespace = &Object{Kind: KindSchema, Name: schema}
	}
	return o
}
