package judge

import "errors"

var (
	ErrJudgeFailed = errors.New("judge call failed")
	ErrUnavailable = errors.New("judge unavailable")
)
