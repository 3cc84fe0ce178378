package modpath

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Separator joins module path components in their textual form.
const Separator = "::"

// ErrInvalid is returned (wrapped) for malformed module paths.
var ErrInvalid = errors.New("invalid module path")

// Path identifies a schema by its hierarchical name.
//
// The zero value is not a valid path; use Parse or New.
type Path struct {
	// joined holds the components joined by Separator. Components never
	// contain Separator, so the joined form is lossless and keeps Path
	// comparable.
	joined string
}

// Parse parses a "::"-joined module path such as "a::b::userProfile".
// Leading and trailing whitespace around components is not trimmed.
func Parse(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return Path{}, fmt.Errorf("%w: path is empty", ErrInvalid)
	}

	return New(strings.Split(s, Separator)...)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// New builds a path from its components.
func New(components ...string) (Path, error) {
	if len(components) == 0 {
		return Path{}, fmt.Errorf("%w: path is empty", ErrInvalid)
	}

	for i, c := range components {
		if strings.TrimSpace(c) == "" {
			return Path{}, fmt.Errorf("%w %q: component %d is blank",
				ErrInvalid, strings.Join(components, Separator), i)
		}

		if strings.Contains(c, Separator) {
			return Path{}, fmt.Errorf("%w: component %q contains %q", ErrInvalid, c, Separator)
		}

		if err := CheckSegment(c); err != nil {
			return Path{}, fmt.Errorf("%w %q: %w", ErrInvalid, strings.Join(components, Separator), err)
		}
	}

	return Path{joined: strings.Join(components, Separator)}, nil
}

// CheckSegment reports an error if s cannot be used as a single file or
// directory name below the schema and output roots.
func CheckSegment(s string) error {
	switch {
	case s == "." || s == "..":
		return fmt.Errorf("segment %q refers to a directory outside its parent", s)
	case strings.ContainsAny(s, `/\`):
		return fmt.Errorf("segment %q contains a path separator", s)
	case strings.ContainsRune(s, 0):
		return fmt.Errorf("segment %q contains a NUL byte", s)
	}

	return nil
}

// IsZero reports whether p is the zero (invalid) path.
func (p Path) IsZero() bool {
	return p.joined == ""
}

// Components returns a copy of the path components.
func (p Path) Components() []string {
	if p.IsZero() {
		return nil
	}

	return strings.Split(p.joined, Separator)
}

// Len returns the number of components.
func (p Path) Len() int {
	if p.IsZero() {
		return 0
	}

	return strings.Count(p.joined, Separator) + 1
}

// Last returns the last component, used for default naming.
func (p Path) Last() string {
	if i := strings.LastIndex(p.joined, Separator); i >= 0 {
		return p.joined[i+len(Separator):]
	}

	return p.joined
}

// Parent returns the components before the last one.
func (p Path) Parent() []string {
	c := p.Components()
	if len(c) <= 1 {
		return nil
	}

	return c[:len(c)-1]
}

// String renders the path joined by Separator.
func (p Path) String() string {
	return p.joined
}

// FilePath returns the OS-specific relative file path ("a/b/c").
func (p Path) FilePath() string {
	return filepath.Join(p.Components()...)
}

// SlashPath returns the slash-separated relative path, as used by io/fs.
func (p Path) SlashPath() string {
	return path.Join(p.Components()...)
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: cannot marshal zero path", ErrInvalid)
	}

	return []byte(p.joined), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which also makes Path
// decodable from YAML and JSON strings.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// ParseAll parses every string in ss, failing on the first invalid one.
func ParseAll(ss []string) ([]Path, error) {
	paths := make([]Path, 0, len(ss))

	for _, s := range ss {
		p, err := Parse(s)
		if err != nil {
			return nil, err
		}

		paths = append(paths, p)
	}

	return paths, nil
}

// Compare orders paths by their textual form.
func Compare(a, b Path) int {
	return strings.Compare(a.joined, b.joined)
}

// Equal reports whether p and other name the same module.
func (p Path) Equal(other Path) bool {
	return p.joined == other.joined
}
