package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every roll leaves an audit entry at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Between returns a uniform random int in [lo, hi] and logs it with reason.
//
// Precondition: lo <= hi.
func (r *Roller) Between(reason string, lo, hi int) int {
	v := Between(r.src, lo, hi)
	r.logger.Debug("dice roll",
		zap.String("reason", reason),
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("result", v),
	)
	return v
}
