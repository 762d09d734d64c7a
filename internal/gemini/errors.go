package gemini

import "errors"

var (
	ErrModelUnavailable   = errors.New("ai model unavailable")
	ErrInvalidModelOutput = errors.New("ai returned an unusable response")
	ErrNothingToEvaluate  = errors.New("no decision shifts in range")
)
