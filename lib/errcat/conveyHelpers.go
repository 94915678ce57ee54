package errcat

import "fmt"

// ShouldErrorWith is a GoConvey-style assertion: `actual` should be an
// `*errcat.Error` whose Category equals the single expected value.
// Returns the empty string on success and a description of the mismatch
// otherwise.  An expectation of nil passes only for a nil error.
//
// Usage:
//
//	So(err, errcat.ShouldErrorWith, api.ErrSaveProtocol)
func ShouldErrorWith(actual interface{}, expectedClause ...interface{}) string {
	if len(expectedClause) != 1 {
		return "Misuse: ShouldErrorWith needs exactly one item in the \"expected\" clause"
	}
	expected := expectedClause[0]
	if actual == nil && expected == nil {
		return ""
	}
	if actual == nil {
		return fmt.Sprintf("Actual: nil\nExpected category: %q", expected)
	}
	if _, ok := actual.(error); !ok {
		return fmt.Sprintf("Actual: %v\nExpected category: %q\nShould have error interface type!", actual, expected)
	}
	e2, ok := actual.(*Error)
	if !ok {
		return fmt.Sprintf("Actual: %v\nExpected category: %q\nShould have an errcat error!  Was type %T.", actual, expected, actual)
	}
	if e2.Category != expected {
		return fmt.Sprintf("Actual category: %q\nExpected category: %q\n(Full error: %v)", e2.Category, expected, actual)
	}
	return ""
}
