package shared

// Option configures the policies of a new handle. Copies inherit the
// policies of their source.
type Option[T any] func(*config[T])

// config collects the options of a new handle.
type config[T any] struct {
	failure FailurePolicy[T]
	bind    *binding[T]
}

// binding holds the policies that belong to a resource rather than to a
// handle. They move with the resource on Swap and Assign, and the handle
// that drops the count to zero frees the resource with them.
type binding[T any] struct {
	release ReleasePolicy[T]
	cells   CellAllocator
	clone   func(*T) *T
}

func newConfig[T any](opts []Option[T]) *config[T] {
	cfg := &config[T]{
		failure: Assertive[T]{},
		bind:    newBinding[T](),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newBinding[T any]() *binding[T] {
	return &binding[T]{
		release: FreeStore[T]{},
		cells:   HeapCells{},
		clone:   cloneValue[T],
	}
}

// WithFailurePolicy sets the dereference check. Default: Assertive.
// The failure policy stays with the handle for its whole life; Assign and
// Swap never change it.
func WithFailurePolicy[T any](p FailurePolicy[T]) Option[T] {
	return func(c *config[T]) {
		if p != nil {
			c.failure = p
		}
	}
}

// WithReleasePolicy sets how the resource is freed. Default: FreeStore.
func WithReleasePolicy[T any](p ReleasePolicy[T]) Option[T] {
	return func(c *config[T]) {
		if p != nil {
			c.bind.release = p
		}
	}
}

// WithCellAllocator sets where count cells come from. Default: HeapCells.
func WithCellAllocator[T any](a CellAllocator) Option[T] {
	return func(c *config[T]) {
		if a != nil {
			c.bind.cells = a
		}
	}
}

// WithClone sets how MakeUnique duplicates a shared value. The default
// copies the value with assignment, which shares anything the value
// points to; values holding pointers, slices or maps usually want a deep
// copy here.
func WithClone[T any](fn func(*T) *T) Option[T] {
	return func(c *config[T]) {
		if fn != nil {
			c.bind.clone = fn
		}
	}
}

func cloneValue[T any](p *T) *T {
	v := *p
	return &v
}
