package rain

import "errors"

// Configuration errors. Callers match them with errors.Is.
var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("rain: width and height must be positive")

	// ErrPositionOutOfRange indicates a head position outside [0, height).
	ErrPositionOutOfRange = errors.New("rain: head position out of range")

	// ErrPositionCount indicates a position slice whose length is not the grid width.
	ErrPositionCount = errors.New("rain: position count does not match width")

	// ErrNegativeTail indicates a negative tail length.
	ErrNegativeTail = errors.New("rain: tail length must not be negative")

	// ErrUnknownSpeed indicates a speed name with no variant.
	ErrUnknownSpeed = errors.New("rain: unknown speed")

	// ErrUnknownMode indicates a mode name with no variant.
	ErrUnknownMode = errors.New("rain: unknown mode")
)
