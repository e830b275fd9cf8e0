package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSignalAlert(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	msg := FormatSignalAlert("EURUSD", 5, "🟢 BUY", 74.0, 1.0858, 0.4006, at)

	assert.Contains(t, msg, "🟢 BUY EURUSD (5m)")
	assert.Contains(t, msg, "1.0858")
	assert.Contains(t, msg, "+0.4%")
	assert.Contains(t, msg, "Confidence: 74.0%")
	assert.Contains(t, msg, "Valid for 5 min")
	assert.Contains(t, msg, "2025-06-02 10:00:00 UTC")
}
