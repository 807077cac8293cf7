package assist

import "errors"

var ErrInvalidInput = errors.New("invalid input")
