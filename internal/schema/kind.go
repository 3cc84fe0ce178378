package schema

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies a member type variant.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindNum
	KindStr
	KindBool
	KindArr
	KindMap
	KindOpt
	KindDefClass
	KindDefEnum
)
