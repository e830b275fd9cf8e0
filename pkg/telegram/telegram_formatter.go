package telegram

import (
	"fmt"
	"strings"
	"time"

	"market-analyzer/pkg/utils"
)

// FormatSignalAlert renders one directional signal as a Telegram
// message. The label already carries the signal emoji.
func FormatSignalAlert(symbol string, minutes int, label string, confidence, price, changePct float64, at time.Time) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s %s (%dm)\n", label, symbol, minutes))
	builder.WriteString(fmt.Sprintf("💰 Price: %g (%s)\n", price, utils.FormatPercentage(changePct)))
	builder.WriteString(fmt.Sprintf("📊 Confidence: %.1f%%\n", confidence))
	builder.WriteString(fmt.Sprintf("⏳ Valid for %d min\n", minutes))
	builder.WriteString(at.UTC().Format("2006-01-02 15:04:05") + " UTC")
	return builder.String()
}
