package hex

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid hexagon coordinate")
	ErrNotFound          = errors.New("coordinate not found within search bound")
)
