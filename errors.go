package hs3003

// BusError wraps a failure reported by the underlying transport. The
// driver never interprets transport errors; it attaches them verbatim
// so callers can unwrap down to the adapter's own error values.
type BusError struct {
	Err error
}

func (e *BusError) Error() string {
	return "hs3003: bus error: " + e.Err.Error()
}

func (e *BusError) Unwrap() error {
	return e.Err
}
