// Package locale holds the user-facing error message tables. The
// analyzer only ever surfaces taxonomy codes; the text shown to users
// is looked up here per language.
package locale

import "market-analyzer/internal/model"

// DefaultLang is used when a requested language has no table.
const DefaultLang = "tg"

// Table maps taxonomy codes to user-facing text for one language.
type Table map[model.ErrorCode]string

var messages = map[string]Table{
	"tg": {
		model.ErrCodeNoData:  "Маълумоти бозор дастрас нест. Лутфан баъдтар кӯшиш кунед.",
		model.ErrCodeTimeout: "Вақти дархост ба охир расид. Лутфан баъдтар кӯшиш кунед.",
		model.ErrCodeGeneral: "Ҳангоми таҳлили бозор хатогӣ рӯй дод.",
	},
	"ru": {
		model.ErrCodeNoData:  "Данные рынка недоступны. Пожалуйста, попробуйте позже.",
		model.ErrCodeTimeout: "Превышено время ожидания ответа. Попробуйте позже.",
		model.ErrCodeGeneral: "Произошла ошибка при анализе рынка.",
	},
	"en": {
		model.ErrCodeNoData:  "Market data is unavailable. Please try again later.",
		model.ErrCodeTimeout: "The request timed out. Please try again later.",
		model.ErrCodeGeneral: "Something went wrong while analyzing the market.",
	},
}

// For returns the message table for lang, falling back to DefaultLang.
func For(lang string) Table {
	if t, ok := messages[lang]; ok {
		return t
	}
	return messages[DefaultLang]
}

// Supported reports whether lang has its own message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// Get returns the text for code, falling back to the general error.
func (t Table) Get(code model.ErrorCode) string {
	if msg, ok := t[code]; ok {
		return msg
	}
	return t[model.ErrCodeGeneral]
}
