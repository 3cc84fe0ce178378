package registry

import (
	"fmt"
	"slices"

	"desergen/internal/modpath"
	"desergen/internal/schema"
)

// Lookup maps every requested module path to its identifier. It is
// complete before resolution starts and read-only afterwards.
type Lookup map[modpath.Path]schema.ID

// AssignIDs gives every path in paths a fresh identifier. Duplicate paths
// share one identifier.
func AssignIDs(paths []modpath.Path) (Lookup, error) {
	lookup := make(Lookup, len(paths))

	for _, p := range paths {
		if p.IsZero() {
			return nil, fmt.Errorf("%w: zero path in requested set", modpath.ErrInvalid)
		}

		if _, ok := lookup[p]; ok {
			continue
		}

		id, err := schema.NewID()
		if err != nil {
			return nil, fmt.Errorf("failed to assign identifier to %s: %w", p, err)
		}

		lookup[p] = id
	}

	return lookup, nil
}

// Paths returns the requested paths in lexical order.
func (l Lookup) Paths() []modpath.Path {
	paths := make([]modpath.Path, 0, len(l))
	for p := range l {
		paths = append(paths, p)
	}

	slices.SortFunc(paths, modpath.Compare)

	return paths
}

// Path returns the requested path that was assigned id.
func (l Lookup) Path(id schema.ID) (modpath.Path, bool) {
	for p, v := range l {
		if v == id {
			return p, true
		}
	}

	return modpath.Path{}, false
}

func (l Lookup) pathStrings() []string {
	paths := l.Paths()

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = p.String()
	}

	return names
}
