// Package errors provides structured error handling for rosetta.
//
// Errors raised while binding, ticking or rebuilding an element tree are
// contained at the element that caused them and reported to a global
// [ErrorHandler]. The default handler is [LogHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindBinding indicates an accessor whose storage is unreachable.
	KindBinding
	// KindReadOnly indicates a write through a read-only accessor.
	KindReadOnly
	// KindRebuild indicates a dynamic element build failure.
	KindRebuild
	// KindUnsupported indicates a value kind or element variant without a mapping.
	KindUnsupported
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration error.
	KindConfig
	// KindStore indicates a persistence error.
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindBinding:
		return "binding"
	case KindReadOnly:
		return "readonly"
	case KindRebuild:
		return "rebuild"
	case KindUnsupported:
		return "unsupported"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// UIError represents a structured error reported by the framework.
type UIError struct {
	// Op is the operation that failed (e.g., "element.Update").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Element is the type name of the element involved, if any.
	Element string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *UIError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s: %v", e.Op, e.Kind, e.Element, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// BindingError reports that an accessor's source storage no longer exists,
// for example because the host object it points into was destroyed.
type BindingError struct {
	// Path describes the accessor (field path or accessor type).
	Path string
	// Reason says what made the source unreachable.
	Reason string
}

func (e *BindingError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("binding %s: source unreachable", e.Path)
	}
	return fmt.Sprintf("binding %s: %s", e.Path, e.Reason)
}

// ReadOnlyError reports a write attempted through a read-only accessor.
type ReadOnlyError struct {
	// Path describes the accessor that rejected the write.
	Path string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("write to read-only accessor %s", e.Path)
}

// UnsupportedError reports a value kind or element variant that has no mapping.
type UnsupportedError struct {
	// What is the kind or variant that could not be handled.
	What string
	// By names the component that lacked the mapping (factory or builder).
	By string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: no mapping for %s", e.By, e.What)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "element.Update").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// RebuildError represents a failure while a dynamic element rebuilt its contents.
type RebuildError struct {
	// Element is the type name of the dynamic element.
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RebuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s rebuild: %v", e.Element, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s rebuild: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("unknown error in %s rebuild", e.Element)
}

func (e *RebuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *UIError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRebuildError is called when a dynamic element fails to rebuild.
	HandleRebuildError(err *RebuildError)
}
