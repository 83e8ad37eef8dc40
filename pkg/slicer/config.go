package slicer

import "github.com/pkg/errors"

// ErrInvalidConfig is returned by Config.Validate when the configuration
// cannot be used to slice a mesh. Slicing never begins when this error is
// returned.
var ErrInvalidConfig = errors.New("slicer: invalid configuration")

// Config holds the single recognized slicing option: the vertical spacing
// between cutting planes.
type Config struct {
	// LayerHeight is the spacing, in model units, between cutting planes.
	// Layer k's cutting plane is z = k * LayerHeight.
	LayerHeight float32
}

// Validate reports an error wrapping ErrInvalidConfig when LayerHeight is
// not strictly positive.
func (c Config) Validate() error {
	if c.LayerHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "layer height %g must be > 0", c.LayerHeight)
	}
	return nil
}
