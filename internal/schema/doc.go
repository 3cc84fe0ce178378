// Package schema defines the resolved type model handed to code generation.
//
// Member types form a closed sum type: Num, Str, Bool, Arr, Map, Opt,
// DefClass and DefEnum all implement MemberType. Two restricted subsets are
// modelled as narrower interfaces implemented by a subset of those variants:
//
//   - MapKeyType: Num, Str, DefEnum
//   - OptType: every variant except Opt
//
// A general MemberType only becomes a MapKeyType or OptType through the
// fallible narrowing functions AsMapKey and AsOptional; there is no implicit
// coercion. Cross-schema references (DefClass, DefEnum) carry an ID rather
// than a module path, so consumers never need to resolve paths again.
package schema
