// Package errutil combines errors from steps that all have to run, such as
// closing several resources in turn.
package errutil

import "strings"

// Multi returns nil if every error is nil, the only non-nil error if there is
// exactly one, and otherwise an error listing all non-nil ones in order.
// Results of Multi passed back to it are flattened.
func Multi(errs ...error) error {
	var me multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			me = append(me, err...)
		default:
			me = append(me, err)
		}
	}
	switch len(me) {
	case 0:
		return nil
	case 1:
		return me[0]
	}
	return me
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is and errors.As look into every constituent error.
func (me multiError) Unwrap() []error { return me }
