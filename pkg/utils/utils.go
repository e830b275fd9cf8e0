package utils

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"runtime/debug"
	"strings"

	"market-analyzer/pkg/logger"
)

// GoSafe runs fn in a new goroutine, logging any panic with its stack
// instead of crashing the process.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

// RoundTo rounds v to the given number of decimal places. NaN and
// infinities propagate unchanged.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// ShouldContinue reports whether ctx is still alive, logging the
// calling function when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	if ctx.Err() == nil {
		return true
	}

	funcName := "unknown"
	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			parts := strings.Split(fn.Name(), "/")
			funcName = parts[len(parts)-1]
		}
	}
	log.Warn("Context cancelled", logger.StringField("caller", funcName))
	return false
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.1f%%", value)
}
