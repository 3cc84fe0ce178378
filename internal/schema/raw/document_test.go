package raw

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desergen/internal/modpath"
	"desergen/internal/schema"
)

const profileDoc = `
name: UserProfile
file_name: user_profile
mod_path: a::b::profile
schema:
  class:
    id: Num
    tags: Arr(Str)
    scores: Map(Str, Num)
    role: DefEnum(a::role)
    address: Opt(DefClass(a::address))
    meta: {Map: [Str, {Arr: Bool}]}
validation:
  required: [id]
  allow_undefined: [address]
  aliases: {id: [ID, identifier]}
  defaults: {role: Admin}
`

func TestParseClassDocument(t *testing.T) {
	doc, err := Parse([]byte(profileDoc))
	require.NoError(t, err)

	assert.Equal(t, "UserProfile", doc.Name)
	assert.Equal(t, "user_profile", doc.FileName)
	require.NotNil(t, doc.ModPath)
	assert.Equal(t, "a::b::profile", doc.ModPath.String())

	expected := &Class{Fields: []Field{
		{Name: "id", Type: Num{}},
		{Name: "tags", Type: Arr{Elem: Str{}}},
		{Name: "scores", Type: Map{Key: Str{}, Value: Num{}}},
		{Name: "role", Type: DefEnum{Path: modpath.MustParse("a::role")}},
		{Name: "address", Type: Opt{Inner: DefClass{Path: modpath.MustParse("a::address")}}},
		{Name: "meta", Type: Map{Key: Str{}, Value: Arr{Elem: Bool{}}}},
	}}

	if diff := cmp.Diff(Schema(expected), doc.Schema); diff != "" {
		t.Errorf("class mismatch (-want +got):\n%s", diff)
	}

	require.NotNil(t, doc.Validation)
	assert.True(t, doc.Validation.IsRequired("id"))
	assert.True(t, doc.Validation.AllowsUndefined("address"))
	assert.Equal(t, []string{"ID", "identifier"}, doc.Validation.AliasesOf("id"))
	assert.Equal(t, schema.Defaults{Fields: map[string]string{"role": "Admin"}}, doc.Validation.Defaults)
}

func TestParseEnumDocument(t *testing.T) {
	doc, err := Parse([]byte(`
schema:
  enum: [Active, Inactive]
validation:
  defaults: Inactive
`))
	require.NoError(t, err)

	assert.Empty(t, doc.Name)
	assert.Nil(t, doc.ModPath)
	assert.Equal(t, &Enum{Variants: []string{"Active", "Inactive"}}, doc.Schema)
	assert.Equal(t, "Inactive", doc.Validation.Defaults.Variant)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty document", "", "no `schema` section"},
		{"missing schema", "name: X\n", "no `schema` section"},
		{"unknown key", "schema: {enum: [A]}\ncolour: red\n", "colour"},
		{"schema not mapping", "schema: [A]\n", "must be a mapping"},
		{"both kinds", "schema: {class: {a: Num}, enum: [A]}\n", "exactly one of"},
		{"unknown kind", "schema: {union: [A]}\n", `unknown schema kind "union"`},
		{"duplicate field", "schema:\n  class:\n    a: Num\n    a: Str\n", "a"},
		{"blank field", "schema:\n  class:\n    ' ': Num\n", "blank field name"},
		{"bad field type", "schema:\n  class:\n    a: Int\n", `field "a"`},
		{"empty enum", "schema: {enum: []}\n", "at least one variant"},
		{"duplicate variant", "schema: {enum: [A, B, A]}\n", `duplicate enum variant "A"`},
		{"blank variant", "schema: {enum: [A, '']}\n", "blank enum variant"},
		{"bad mod path", "mod_path: 'a::::b'\nschema: {enum: [A]}\n", "blank"},
		{"blank name", "name: ' '\nschema: {enum: [A]}\n", "name override"},
		{"escaping mod path", "mod_path: '..::..::escape'\nschema: {enum: [A]}\n", "outside its parent"},
		{"escaping file name", "file_name: ../pwn\nschema: {enum: [A]}\n", "file_name override: segment"},
		{"dot file name", "file_name: .\nschema: {enum: [A]}\n", "file_name override"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseMissingSchemaSentinel(t *testing.T) {
	_, err := Parse([]byte("file_name: x\n"))
	assert.True(t, errors.Is(err, errMissingSchema))
}
