package i18n

import "strings"

// Translator retrieves localized messages for issue codes. data provides
// optional metadata to embed in the message (for example, "min" or "prefix").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates embed
// metadata with {key} placeholders.
type dictTranslator struct{ lang string }

var enDict = map[string]string{
	"required":           "required property missing",
	"type":               "invalid type: expected {expected}",
	"minLength":          "too short: length must be at least {min}",
	"maxLength":          "too long: length must be at most {max}",
	"pattern":            "value does not match pattern {pattern}",
	"enum":               "value is not one of the allowed set",
	"isInteger":          "value must be an integer",
	"minimum":            "value must be at least {min}",
	"maximum":            "value must be at most {max}",
	"startsWith":         `value must start with "{prefix}"`,
	"endsWith":           `value must end with "{suffix}"`,
	"transform":          "transform {name} failed: {cause}",
	"item":               "item at index {index} is invalid: {cause}",
	"missing-capability": "missing capability: value is not callable",
}

var jaDict = map[string]string{
	"required":           "必須プロパティが不足しています",
	"type":               "型が不正です: {expected} を期待しています",
	"minLength":          "短すぎます: 長さは {min} 以上が必要です",
	"maxLength":          "長すぎます: 長さは {max} 以下が必要です",
	"pattern":            "値がパターン {pattern} に一致しません",
	"enum":               "値が許可された集合に含まれていません",
	"isInteger":          "値は整数である必要があります",
	"minimum":            "値は {min} 以上である必要があります",
	"maximum":            "値は {max} 以下である必要があります",
	"startsWith":         "値は \"{prefix}\" で始まる必要があります",
	"endsWith":           "値は \"{suffix}\" で終わる必要があります",
	"transform":          "変換 {name} が失敗しました: {cause}",
	"item":               "インデックス {index} の要素が不正です: {cause}",
	"missing-capability": "ケイパビリティが不足しています: 値が呼び出し可能ではありません",
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := enDict
	if t.lang == "ja" {
		dict = jaDict
	}
	tmpl, ok := dict[code]
	if !ok {
		return code
	}
	for k, v := range data {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", v)
	}
	return tmpl
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
