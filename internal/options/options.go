// Package options implements the generic functional option pattern shared by
// the sync, stream, demuxer and muxer configurations.
//
// Each configurable type T exposes its own option alias:
//
//	type StreamOption = options.Option[*streamConfig]
//
//	func WithPageFill(n int) StreamOption {
//		return options.New(func(c *streamConfig) error { ... })
//	}
//
// Options are applied in order; the first error aborts and is returned
// unchanged.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps fn as an option. fn may reject its input by returning an error.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError wraps an option function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
