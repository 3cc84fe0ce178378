package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"userProfile", "UserProfile"},
		{"user_profile", "UserProfile"},
		{"user-profile", "UserProfile"},
		{"UserProfile", "UserProfile"},
		{"role", "Role"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeName(tt.input))
		})
	}
}

func TestConstAndFuncNames(t *testing.T) {
	assert.Equal(t, "USER_PROFILE", ConstName("UserProfile"))
	assert.Equal(t, "ROLE", ConstName("Role"))
	assert.Equal(t, "deserializeUserProfile", FuncName("deserialize", "userProfile"))
	assert.Equal(t, "parseRole", FuncName("parse", "Role"))
}

func TestPropertyNames(t *testing.T) {
	assert.Equal(t, "createdAt", PropertyName("createdAt"))
	assert.Equal(t, `"created-at"`, PropertyName("created-at"))
	assert.Equal(t, "obj.id", PropertyAccess("obj", "id"))
	assert.Equal(t, `obj["2nd"]`, PropertyAccess("obj", "2nd"))
}

func TestEnumMember(t *testing.T) {
	assert.Equal(t, "Active", EnumMember("Active"))
	assert.Equal(t, "InProgress", EnumMember("in-progress"))
	assert.Equal(t, "Class", EnumMember("class"))
	assert.True(t, strings.HasPrefix(EnumMember("2fa"), "_2"))
	assert.True(t, IsIdentifier(EnumMember("2fa")))
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"id", true},
		{"_private", true},
		{"$ref", true},
		{"field2", true},
		{"", false},
		{"2field", false},
		{"has space", false},
		{"dash-ed", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsIdentifier(tt.input))
		})
	}

	assert.True(t, IsReserved("delete"))
	assert.False(t, IsReserved("remove"))
}
