// Package errors provides the structured error types used throughout
// mexbind.
//
// Every failure that crosses the dispatch boundary carries a two-part
// payload: a colon-delimited identifier the caller can pattern-match on, and
// a human-readable detail message. Errors additionally carry a Kind for
// errors.Is matching:
//
//	err := d.Dispatch(0, obj, "set", "VarA", 999)
//	if errors.Is(err, &errors.Error{Kind: errors.KindInvalidProperty}) {
//	    // bad property value
//	}
//
// Identifiers follow the form "<Class>:mex:<stage>:<reason>". Sub-identifiers
// raised by class code are re-qualified with the class and stage prefix at
// the dispatch boundary; see Qualify. Literal '.' inside an identifier is
// normalized to ':' since '.' is not a valid identifier delimiter.
package errors
