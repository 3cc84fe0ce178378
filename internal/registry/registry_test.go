package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desergen/internal/diagnostic"
	"desergen/internal/modpath"
	"desergen/internal/schema"
	"desergen/internal/schema/raw"
)

// docLoader serves YAML documents keyed by module path string.
type docLoader map[string]string

func (l docLoader) Load(_ context.Context, p modpath.Path) (*raw.Document, error) {
	src, ok := l[p.String()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, fs.ErrNotExist)
	}

	return raw.Parse([]byte(src))
}

func paths(ss ...string) []modpath.Path {
	out := make([]modpath.Path, len(ss))
	for i, s := range ss {
		out[i] = modpath.MustParse(s)
	}

	return out
}

func build(t *testing.T, docs docLoader, requested ...string) (*Registry, error) {
	t.Helper()

	b := NewBuilder(docs, Config{Workers: 4}, zerolog.Nop())

	return b.Build(context.Background(), paths(requested...))
}

func infoByPath(t *testing.T, reg *Registry, p string) *schema.Info {
	t.Helper()

	for _, info := range reg.All() {
		if info.ModPath.String() == p {
			return info
		}
	}

	t.Fatalf("no schema at %s", p)

	return nil
}

func TestBuildMutualReferences(t *testing.T) {
	docs := docLoader{
		"a": "schema:\n  class:\n    b: DefClass(b)\n",
		"b": "schema:\n  class:\n    a: Opt(DefClass(a))\n",
	}

	reg, err := build(t, docs, "a", "b")
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	a := infoByPath(t, reg, "a")
	b := infoByPath(t, reg, "b")

	expectedA := &schema.Class{Fields: []schema.Field{{Name: "b", Type: schema.DefClass{ID: b.ID}}}}
	expectedB := &schema.Class{Fields: []schema.Field{{Name: "a", Type: schema.Opt{Inner: schema.DefClass{ID: a.ID}}}}}

	if diff := cmp.Diff(schema.Schema(expectedA), a.Schema); diff != "" {
		t.Errorf("a mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(schema.Schema(expectedB), b.Schema); diff != "" {
		t.Errorf("b mismatch (-want +got):\n%s", diff)
	}

	refs, err := reg.References(a.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Same(t, b, refs[0])
}

func TestBuildSelfReference(t *testing.T) {
	docs := docLoader{
		"tree::node": "schema:\n  class:\n    children: Arr(DefClass(tree::node))\n",
	}

	reg, err := build(t, docs, "tree::node")
	require.NoError(t, err)

	node := infoByPath(t, reg, "tree::node")
	assert.Equal(t, []schema.ID{node.ID}, schema.SchemaReferences(node.Schema))

	refs, err := reg.References(node.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestBuildUnrequestedReference(t *testing.T) {
	docs := docLoader{
		"a": "schema:\n  class:\n    c: DefClass(c)\n",
		"c": "schema:\n  class:\n    x: Num\n",
	}

	reg, err := build(t, docs, "a")
	require.Error(t, err)
	assert.Nil(t, reg)

	var refErr *schema.UnresolvedReferenceError

	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, modpath.MustParse("c"), refErr.Path)

	var fieldErr *schema.FieldError

	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "c", fieldErr.Field)
}

func TestBuildCollectsEveryFailure(t *testing.T) {
	docs := docLoader{
		"ok":       "schema:\n  enum: [A]\n",
		"bad::key": "schema:\n  class:\n    m: Map(Bool, Num)\n",
		"bad::opt": "schema:\n  class:\n    o: Opt(Opt(Num))\n",
		"bad::ref": "schema:\n  class:\n    r: DefEnum(bad::rf)\n",
	}

	reg, err := build(t, docs, "ok", "bad::key", "bad::opt", "bad::ref", "missing")
	require.Error(t, err)
	assert.Nil(t, reg)

	var buildErr *BuildError

	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Failures, 4)

	failed := make([]string, len(buildErr.Failures))
	for i, f := range buildErr.Failures {
		failed[i] = f.Path.String()
	}

	assert.Equal(t, []string{"bad::key", "bad::opt", "bad::ref", "missing"}, failed)

	var loadErr *LoadError

	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	diags := buildErr.Diagnostics()
	require.Len(t, diags.Errors, 4)

	codes := map[string]string{}
	for _, d := range diags.Errors {
		codes[d.Schema] = d.Code
	}

	assert.Equal(t, map[string]string{
		"bad::key": diagnostic.CodeInvalidMapKey,
		"bad::opt": diagnostic.CodeInvalidOptional,
		"bad::ref": diagnostic.CodeUnresolvedReference,
		"missing":  diagnostic.CodeLoadFailed,
	}, codes)

	for _, d := range diags.Errors {
		if d.Schema == "bad::ref" {
			assert.Equal(t, "r", d.Field)
			assert.Equal(t, []string{"bad::ref"}, d.Suggestions)
		}
	}

	assert.Contains(t, err.Error(), "4 schemas invalid")
}

func TestBuildRejectsEscapingOverrides(t *testing.T) {
	docs := docLoader{
		"a::mod":  "mod_path: ..::..::escape\nschema:\n  enum: [A]\n",
		"a::file": "file_name: ../pwn\nschema:\n  enum: [A]\n",
		"a::ok":   "schema:\n  enum: [A]\n",
	}

	reg, err := build(t, docs, "a::mod", "a::file", "a::ok")
	require.Error(t, err)
	assert.Nil(t, reg)

	var buildErr *BuildError

	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Failures, 2)
	assert.Contains(t, err.Error(), "outside its parent")
	assert.Contains(t, err.Error(), "file_name override")
}

func TestBuildNoDanglingReferences(t *testing.T) {
	docs := docLoader{
		"shop::order": `
schema:
  class:
    id: Num
    customer: DefClass(shop::customer)
    status: DefEnum(shop::status)
    lines: Arr(DefClass(shop::line))
    byStatus: Map(DefEnum(shop::status), Arr(DefClass(shop::line)))
`,
		"shop::customer": "schema:\n  class:\n    name: Str\n    lastOrder: Opt(DefClass(shop::order))\n",
		"shop::line":     "schema:\n  class:\n    sku: Str\n    qty: Num\n",
		"shop::status":   "schema:\n  enum: [Open, Closed]\n",
	}

	reg, err := build(t, docs, "shop::order", "shop::customer", "shop::line", "shop::status")
	require.NoError(t, err)

	for _, info := range reg.All() {
		for _, id := range schema.SchemaReferences(info.Schema) {
			_, err := reg.Get(id)
			assert.NoError(t, err, "dangling reference from %s", info.ModPath)
		}
	}
}

func TestBuildDefaultNamingAndOverrides(t *testing.T) {
	docs := docLoader{
		"a::b::userProfile": "schema:\n  class:\n    id: Num\n",
		"a::b::account": `
name: Login
file_name: login_account
mod_path: auth::login
schema:
  class:
    id: Num
`,
	}

	reg, err := build(t, docs, "a::b::userProfile", "a::b::account")
	require.NoError(t, err)

	profile := infoByPath(t, reg, "a::b::userProfile")
	assert.Equal(t, "userProfile", profile.FileName)
	assert.Equal(t, "UserProfile", profile.Name)

	account := infoByPath(t, reg, "auth::login")
	assert.Equal(t, "Login", account.Name)
	assert.Equal(t, "login_account", account.FileName)
}

func TestBuildEnumDefault(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
		wantErr  any
	}{
		{
			name:     "first variant",
			doc:      "schema:\n  enum: [Active, Inactive]\n",
			expected: "Active",
		},
		{
			name:     "declared variant",
			doc:      "schema:\n  enum: [Active, Inactive]\nvalidation:\n  defaults: Inactive\n",
			expected: "Inactive",
		},
		{
			name:    "undeclared variant",
			doc:     "schema:\n  enum: [Active, Inactive]\nvalidation:\n  defaults: Deleted\n",
			wantErr: new(*schema.EnumDefaultError),
		},
		{
			name:    "mapping for enum",
			doc:     "schema:\n  enum: [Active]\nvalidation:\n  defaults: {Active: x}\n",
			wantErr: new(*schema.DefaultsShapeError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := build(t, docLoader{"status": tt.doc}, "status")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, reg)
				assert.ErrorAs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, infoByPath(t, reg, "status").Enum().Default)
		})
	}
}

func TestBuildRejectsScalarClassDefaults(t *testing.T) {
	_, err := build(t, docLoader{"a": "schema:\n  class:\n    x: Num\nvalidation:\n  defaults: x\n"}, "a")

	var shapeErr *schema.DefaultsShapeError

	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "class", shapeErr.Schema)
}

func TestBuildCarriesValidation(t *testing.T) {
	doc := `
schema:
  class:
    id: Num
    nick: Opt(Str)
validation:
  required: [id]
  aliases: {nick: [nickname]}
  defaults: {nick: anon}
`

	reg, err := build(t, docLoader{"user": doc}, "user")
	require.NoError(t, err)

	user := infoByPath(t, reg, "user")
	require.NotNil(t, user.Validation)
	assert.Equal(t, []string{"id"}, user.Validation.Required)
	assert.Equal(t, []string{"nickname"}, user.Validation.AliasesOf("nick"))
	assert.Equal(t, map[string]string{"nick": "anon"}, user.Validation.Defaults.Fields)
}

func TestBuildDuplicateRequestedPaths(t *testing.T) {
	reg, err := build(t, docLoader{"a": "schema:\n  enum: [X]\n"}, "a", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(docLoader{"a": "schema:\n  enum: [X]\n"}, DefaultConfig(), zerolog.Nop())

	_, err := b.Build(ctx, paths("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRegistryGetUnknown(t *testing.T) {
	reg, err := build(t, docLoader{"a": "schema:\n  enum: [X]\n"}, "a")
	require.NoError(t, err)

	id, err := schema.NewID()
	require.NoError(t, err)

	_, err = reg.Get(id)

	var unknown *schema.UnknownIdentifierError

	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, id, unknown.ID)
}

func TestRegistrySorted(t *testing.T) {
	docs := docLoader{
		"c": "schema:\n  enum: [X]\n",
		"a": "schema:\n  enum: [X]\n",
		"b": "schema:\n  enum: [X]\n",
	}

	reg, err := build(t, docs, "c", "a", "b")
	require.NoError(t, err)

	var order []string
	for _, info := range reg.Sorted() {
		order = append(order, info.ModPath.String())
	}

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestLoaderFunc(t *testing.T) {
	called := false
	loader := LoaderFunc(func(_ context.Context, p modpath.Path) (*raw.Document, error) {
		called = true
		return &raw.Document{Schema: &raw.Enum{Variants: []string{p.Last()}}}, nil
	})

	reg, err := NewBuilder(loader, Config{}, zerolog.Nop()).Build(context.Background(), paths("x::Mode"))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "Mode", infoByPath(t, reg, "x::Mode").Enum().Default)
}
