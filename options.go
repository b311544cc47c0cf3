package glemu

// Option configures an IndexArray during creation.
//
// Example:
//
//	res := glemu.NewResources()
//	ia := glemu.NewIndexArray(gl, true, 6*1024,
//	    glemu.WithLabel("sprite-batch"),
//	    glemu.WithResources(res),
//	)
type Option func(*indexOptions)

// indexOptions holds optional configuration for IndexArray creation.
type indexOptions struct {
	label     string
	resources *Resources
}

// defaultOptions returns the default index array options.
func defaultOptions() indexOptions {
	return indexOptions{
		label:     "",  // omitted from log records
		resources: nil, // untracked
	}
}

// WithLabel sets a debug label that is attached to log records.
func WithLabel(label string) Option {
	return func(o *indexOptions) {
		o.label = label
	}
}

// WithResources registers the array with r on creation so that
// r.InvalidateAll can recreate its handle after a context loss.
// Dispose removes it again.
func WithResources(r *Resources) Option {
	return func(o *indexOptions) {
		o.resources = r
	}
}
