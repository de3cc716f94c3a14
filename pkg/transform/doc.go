// Package transform converts prop values across the attribute boundary.
//
// Attributes are always strings; props are typed. Each Kind owns a
// Transform that parses an attribute string into a typed value and
// stringifies a typed value back for attribute reflection.
//
// # Kinds
//
//	string    identity
//	number    float64, unparsable input becomes NaN
//	boolean   "true" is true, anything else is false
//	array     JSON array, or a comma separated list as a fallback
//	object    JSON object
//	json      any JSON value
//	function  name of a registered global Func, bound to the host element
//
// # Registry
//
// A Registry maps kinds to transforms. NewRegistry returns one holding the
// built-in kinds; Register adds or replaces a kind:
//
//	reg := transform.NewRegistry(transform.WithResolver(globals))
//	t, ok := reg.Lookup(transform.KindArray)
//	v, err := t.Parse(`["a","b"]`, host)
package transform
