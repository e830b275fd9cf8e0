package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap/zapcore"

	"market-analyzer/pkg/common"
)

// AlertCore wraps another core and mirrors flagged entries to a
// Telegram chat. An entry is mirrored when it carries the Alert()
// field and its level is at least minLevel. Delivery is asynchronous
// and best effort: alerting must never block or fail logging.
type AlertCore struct {
	core     zapcore.Core
	alert    AlertOptions
	minLevel zapcore.Level
}

func NewAlertCore(core zapcore.Core, alert AlertOptions, minLevel zapcore.Level) *AlertCore {
	return &AlertCore{core: core, alert: alert, minLevel: minLevel}
}

func (a *AlertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	return &AlertCore{
		core:     a.core.With(fields),
		alert:    a.alert,
		minLevel: a.minLevel,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, a)
	}
	return checkedEntry
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= a.minLevel && hasAlertFlag(fields) {
		go a.sendTelegramAlert(entry, fields)
	}
	return a.core.Write(entry, fields)
}

func (a *AlertCore) Sync() error {
	return a.core.Sync()
}

func hasAlertFlag(fields []zapcore.Field) bool {
	for _, f := range fields {
		if f.Key == common.KEY_LOG_HOOK_SEND_ALERT && f.Type == zapcore.BoolType && f.Integer == 1 {
			return true
		}
	}
	return false
}

func (a *AlertCore) sendTelegramAlert(entry zapcore.Entry, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 %s: %s\n", entry.Level.CapitalString(), entry.Message)
	for k, v := range enc.Fields {
		if k == common.KEY_LOG_HOOK_SEND_ALERT {
			continue
		}
		fmt.Fprintf(&b, "• %s: %v\n", k, v)
	}
	fmt.Fprintf(&b, "Time: %s", entry.Time.Format("2006-01-02 15:04:05"))

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", a.alert.BotToken)
	payload := map[string]interface{}{
		"chat_id": a.alert.ChatID,
		"text":    b.String(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}
