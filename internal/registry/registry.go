package registry

import (
	"slices"

	"desergen/internal/modpath"
	"desergen/internal/schema"
)

// Registry holds every resolved schema of one run, keyed by identifier.
// It is read-only once Build returns it.
type Registry struct {
	infos map[schema.ID]*schema.Info
}

func newRegistry(size int) *Registry {
	return &Registry{infos: make(map[schema.ID]*schema.Info, size)}
}

// Get returns the schema assigned id.
func (r *Registry) Get(id schema.ID) (*schema.Info, error) {
	info, ok := r.infos[id]
	if !ok {
		return nil, &schema.UnknownIdentifierError{ID: id}
	}

	return info, nil
}

// All returns every schema in unspecified order.
func (r *Registry) All() []*schema.Info {
	all := make([]*schema.Info, 0, len(r.infos))
	for _, info := range r.infos {
		all = append(all, info)
	}

	return all
}

// Sorted returns every schema ordered by module path, then identifier.
func (r *Registry) Sorted() []*schema.Info {
	all := r.All()

	slices.SortFunc(all, func(a, b *schema.Info) int {
		if c := modpath.Compare(a.ModPath, b.ModPath); c != 0 {
			return c
		}

		return a.ID.Compare(b.ID)
	})

	return all
}

// Len returns the number of schemas.
func (r *Registry) Len() int {
	return len(r.infos)
}

// References returns the distinct schemas that the fields of id refer to,
// in field order and excluding id itself.
func (r *Registry) References(id schema.ID) ([]*schema.Info, error) {
	info, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	var (
		refs []*schema.Info
		seen = make(map[schema.ID]struct{})
	)

	for _, ref := range schema.SchemaReferences(info.Schema) {
		if _, dup := seen[ref]; dup || ref == id {
			continue
		}

		seen[ref] = struct{}{}

		target, err := r.Get(ref)
		if err != nil {
			return nil, err
		}

		refs = append(refs, target)
	}

	return refs, nil
}
