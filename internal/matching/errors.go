package matching

import "errors"

var ErrMatchingFailed = errors.New("template matching failed")
