package common

// Cache key layouts, formatted with fmt.Sprintf.
const (
	// symbol
	KEY_ANALYSIS_RESULT = "analysis_result:%s"
	// symbol, window minutes, signal
	KEY_SIGNAL_ALERT = "signal_alert:%s:%d:%s"
)

const (
	KEY_LOG_HOOK_SEND_ALERT = "send_alert"
)
