package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use
// case. Callers render it as an opaque internal failure; domain errors pass
// through unwrapped.
var ErrPersistence = fmt.Errorf("chat use case persistence error")
