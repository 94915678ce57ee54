package errcat

/*
	Return the category of `err` if it is an `*errcat.Error`,
	the sentinel `unknown` value if it is some other kind of error,
	or nil if the error is nil.

	Handy for switching without a type assertion at every call site:

		switch errcat.Category(err) {
		case nil:
			// good!
		case api.ErrSaveTransport:
			// maybe retry
		default:
			return err
		}
*/
func Category(err error) interface{} {
	if err == nil {
		return nil
	}
	e, ok := err.(*Error)
	if !ok {
		return unknown{}
	}
	return e.Category
}

// sentinel type; never equal to any category a package declares.
type unknown struct{}
