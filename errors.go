package cachex

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName      = errors.New("cachex: cache name must not be empty")
	ErrNilBackend     = errors.New("cachex: backend must not be nil")
	ErrNoDefaultCache = errors.New("cachex: no cache registered")
)

// NoSuchCacheError is returned when an explicit cache name was never
// registered. It is a configuration error and is always surfaced.
type NoSuchCacheError struct {
	Name string
}

func (e *NoSuchCacheError) Error() string {
	return fmt.Sprintf("cachex: no cache implementation named %q", e.Name)
}

// BackendError describes a failed backend call. The Manager never returns it;
// it is handed to the Logger and Hooks only.
type BackendError struct {
	Cache string
	Op    Op
	Keys  []string
	Err   error
}

func (e *BackendError) Error() string {
	switch len(e.Keys) {
	case 0:
		return fmt.Sprintf("cachex: %s on %q failed: %v", e.Op, e.Cache, e.Err)
	case 1:
		return fmt.Sprintf("cachex: %s on %q failed, key %q: %v", e.Op, e.Cache, e.Keys[0], e.Err)
	default:
		return fmt.Sprintf("cachex: %s on %q failed, keys [%s]: %v",
			e.Op, e.Cache, strings.Join(e.Keys, ","), e.Err)
	}
}

func (e *BackendError) Unwrap() error { return e.Err }

// PanicError wraps a value recovered from a panicking backend.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("backend panic: %v", e.Value) }

// UnsupportedContainerError is returned by the Converter when asked for a
// container kind it has no factory for, or when the built container is not of
// the concrete type the caller requested.
type UnsupportedContainerError struct {
	Kind ContainerKind
	Want string // requested Go type, set by MapAs/CollectionAs
}

func (e *UnsupportedContainerError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("cachex: container kind %s does not produce %s", e.Kind, e.Want)
	}
	return fmt.Sprintf("cachex: unsupported container kind %s", e.Kind)
}

// InvalidIDError is returned by the Converter when the id mapped to a cache
// key cannot be used as a map key (a slice, map or func).
type InvalidIDError struct {
	Key string
	ID  any
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("cachex: id %T for key %q is not comparable", e.ID, e.Key)
}
