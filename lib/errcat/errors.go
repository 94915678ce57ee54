/*
	errcat gives every error that crosses a package boundary in calcgraph
	a category and a message, kept apart.

	The category is what callers switch on.  It is usually one of the
	string constants declared in the `api` package (`api.ErrSaveProtocol`
	and friends), and it may be reassigned with `Recategorize` as the
	error travels upward.

	The message is for humans.  It is printed as-is by the CLI and is not
	meant to be parsed.

	When an error wraps a lower-level cause (a net/http failure, a yaml
	parse error), the cause is retained and reachable through `Unwrap`,
	so `errors.Is` and `errors.As` keep working across the category layer.

	Serialized, an error is the simple object:

		{"category":"calcgraph-save-protocol", "msg":"full text goes here"}
*/
package errcat

import "fmt"

var _ error = &Error{}

type Error struct {
	Category interface{}       // switch on this; usually an enum-like string
	Msg      string            // human-readable message to print
	Details  map[string]string // optional key-value pairs for logging
	cause    error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Errorf(category interface{}, format string, args ...interface{}) error {
	return &Error{Category: category, Msg: fmt.Sprintf(format, args...)}
}

// Errorw wraps `cause` with a category.  The message is the cause's message.
// A nil cause yields nil.
func Errorw(category interface{}, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Category: category, Msg: cause.Error(), cause: cause}
}

// ErrorDetailed is Errorf with attached details.
func ErrorDetailed(category interface{}, details map[string]string, format string, args ...interface{}) error {
	return &Error{Category: category, Msg: fmt.Sprintf(format, args...), Details: details}
}

func Recategorize(err error, category interface{}) error {
	switch e2 := err.(type) {
	case nil:
		return nil
	case *Error:
		return &Error{Category: category, Msg: e2.Msg, Details: e2.Details, cause: e2.cause}
	default:
		return &Error{Category: category, Msg: e2.Error(), cause: err}
	}
}
