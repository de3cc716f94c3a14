// Package errors provides coded, structured errors for vango elements.
//
// Every error carries a code (e.g. "E200") registered with a category,
// a short message and a longer detail. Errors may wrap an underlying
// cause, so errors.Is and errors.As see through them.
//
// # Categories
//
//   - config: element definitions and manifests (unknown prop types, bad
//     shadow modes, invalid element names)
//   - runtime: attribute and property synchronization (wrong value shape)
//   - render: failures reported by the injected renderer
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("E200").
//	    WithDetail(`prop "count" declares type "integer"`).
//	    WithSuggestion("Use one of: string, number, boolean, array, object, json, function")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E200: Unknown prop type
//	//
//	//   prop "count" declares type "integer"
//	//
//	//   Hint: Use one of: string, number, boolean, array, object, json, function
package errors
