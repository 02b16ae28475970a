package decoder

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// LogWarnings returns a warning hook that logs each warning at warn level.
// Any keyvals are added to every line, e.g. "file", name.
func LogWarnings(logger log.Logger, keyvals ...interface{}) WarningFunc {
	logger = log.With(logger, keyvals...)
	return func(message string, point Point, code WarningCode) {
		level.Warn(logger).Log(
			"msg", message,
			"code", int(code),
			"line", point.Line,
			"column", point.Column,
			"offset", point.Offset,
		)
	}
}
