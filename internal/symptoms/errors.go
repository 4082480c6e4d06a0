package symptoms

import "fmt"

// ValidationError rejects bad input before anything is mutated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// DeserializationError means the persisted log could not be decoded. The log
// falls back to an empty collection.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("corrupt symptom log: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("entry index %d out of range [0,%d)", e.Index, e.Len)
}

// PersistenceError wraps a storage read or write failure. When Op is a write,
// the in-memory log still holds the previous collection.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s symptom log: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
