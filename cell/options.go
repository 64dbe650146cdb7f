// File: cell/options.go
// Package cell defines functional options forwarded to payload construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cell

// Option customizes payload construction inside New.
type Option[T any] func(*config[T])

type config[T any] struct {
	seed  *T
	init  func(*T) error
	final func(*T)
}

// WithValue seeds the payload with v before WithInit runs.
func WithValue[T any](v T) Option[T] {
	return func(c *config[T]) {
		c.seed = &v
	}
}

// WithInit runs fn at the reserved payload address during construction.
// A non-nil error fails the construction; the storage is released and no
// finalizer runs.
func WithInit[T any](fn func(*T) error) Option[T] {
	return func(c *config[T]) {
		c.init = fn
	}
}

// WithFinalizer registers fn to run on the live payload during Free.
func WithFinalizer[T any](fn func(*T)) Option[T] {
	return func(c *config[T]) {
		c.final = fn
	}
}
