package schema

// Normalize lowers the message and dynamic error forms of n into a single
// Check. It returns nil when no check applies: the type has no predicate
// (identity wrap) or its constructor is written by hand.
//
// The message form becomes a Failure carrying the fixed text; the generator
// emits it as a sentinel error so both forms end in one "return zero, err" path.
func Normalize(n *Newtype) *Check {
	if n == nil || n.Manual || n.Predicate == "" {
		return nil
	}

	check := &Check{Predicate: n.Predicate}

	switch {
	case n.ErrorFunc != "":
		check.Failure = Failure{
			Form: ErrorFormDynamic,
			Func: n.ErrorFunc,
			Type: n.ErrorType,
		}
	case n.Message != "":
		check.Failure = Failure{
			Form:    ErrorFormMessage,
			Message: n.Message,
		}
	}

	return check
}
