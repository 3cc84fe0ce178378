// Package raw provides the unresolved schema model as decoded from schema
// documents, where references to other schemas are still module paths.
//
// # Document format
//
//	name: UserProfile          # optional, defaults to the cased path tail
//	file_name: user_profile    # optional, defaults to the path tail
//	mod_path: a::b::profile    # optional, defaults to the requested path
//	schema:
//	  class:
//	    id: Num
//	    tags: Arr(Str)
//	    scores: Map(Str, Num)
//	    role: DefEnum(a::role)
//	    home: Opt(DefClass(a::address))
//	validation:
//	  required: [id]
//	  aliases: {id: [ID]}
//
// An enum body is a sequence of variant names: `enum: [Active, Inactive]`.
//
// # Type expressions
//
// Member types are written as expressions:
//
//	Num | Str | Bool | Arr(T) | Map(K, V) | Opt(T) | DefClass(path) | DefEnum(path)
//
// or in tagged mapping form: {Arr: T}, {Opt: T}, {Map: [K, V]},
// {DefClass: path}, {DefEnum: path}.
//
// Map keys and optional inners are unrestricted at this layer so that every
// shape can be expressed; restrictions are enforced during resolution.
package raw
