package schema

// Walk calls fn for t and every member type nested in it, depth first.
// Returning false from fn skips the children of that node.
func Walk(t MemberType, fn func(MemberType) bool) {
	if t == nil || !fn(t) {
		return
	}

	switch v := t.(type) {
	case Arr:
		Walk(v.Elem, fn)
	case Map:
		Walk(v.Key, fn)
		Walk(v.Value, fn)
	case Opt:
		Walk(v.Inner, fn)
	}
}

// References returns the IDs referenced by t in depth-first order,
// duplicates included.
func References(t MemberType) []ID {
	var ids []ID

	Walk(t, func(m MemberType) bool {
		switch v := m.(type) {
		case DefClass:
			ids = append(ids, v.ID)
		case DefEnum:
			ids = append(ids, v.ID)
		}

		return true
	})

	return ids
}

// SchemaReferences returns the IDs referenced by every field of s.
// Enums reference nothing.
func SchemaReferences(s Schema) []ID {
	c, ok := s.(*Class)
	if !ok {
		return nil
	}

	var ids []ID
	for _, f := range c.Fields {
		ids = append(ids, References(f.Type)...)
	}

	return ids
}
