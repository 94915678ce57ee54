package api

import (
	"go.polydawn.net/calcgraph/lib/errcat"
)

// ErrorCategory enumerates the errcat categories calcgraph packages return.
type ErrorCategory string

const (
	ErrUsage         ErrorCategory = "calcgraph-usage"          // bad flags, config, or arguments.
	ErrIO            ErrorCategory = "calcgraph-io"             // reading a document file failed.
	ErrParsing       ErrorCategory = "calcgraph-parsing"        // a document file didn't parse or made no sense.
	ErrTexify        ErrorCategory = "calcgraph-texify"         // source notation couldn't be converted to markup.
	ErrEncoding      ErrorCategory = "calcgraph-encoding"       // the state couldn't be serialized.
	ErrSaveTransport ErrorCategory = "calcgraph-save-transport" // the save request never got an answer.
	ErrSaveProtocol  ErrorCategory = "calcgraph-save-protocol"  // the service answered, but not with a usable receipt.
)

func errorf(category ErrorCategory, format string, args ...interface{}) error {
	return errcat.Errorf(category, format, args...)
}

/*
	Exit codes for the CLI.  Zero is success; everything else says which
	side of the fence the problem is on.
*/
const (
	ExitSuccess  = 0
	ExitUsage    = 1 // you asked for something that can't work.
	ExitInput    = 2 // your document is broken.
	ExitService  = 3 // the calculator service let us down.
	ExitInternal = 9 // we did something wrong; please report it.
)

func ExitCodeForError(err error) int {
	switch errcat.Category(err) {
	case nil:
		return ExitSuccess
	case ErrUsage:
		return ExitUsage
	case ErrIO, ErrParsing, ErrTexify:
		return ExitInput
	case ErrSaveTransport, ErrSaveProtocol:
		return ExitService
	default:
		return ExitInternal
	}
}
