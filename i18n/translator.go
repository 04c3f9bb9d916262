package i18n

import "strings"

// Translator retrieves localized messages for facet diagnostic codes.
// data provides values substituted into the message (for example, "name"
// for the offending annotation or "cause" for the underlying failure).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogs = map[string]map[string]string{
	"en": {
		"unknown_annotation":          "using unknown annotation type: {name}",
		"invalid_annotation":          "invalid annotation value: {cause}",
		"invalid_default":             "using invalid `defaultValue`: {cause}",
		"invalid_example":             "using invalid `example`: {cause}",
		"invalid_examples":            "using invalid `examples`",
		"examples_not_map":            "examples should be a map",
		"discriminator_not_object":    "you only can use `discriminator` with object types",
		"discriminator_unknown":       "Using unknown property: {name} as discriminator",
		"discriminator_not_scalar":    "It is only allowed to use scalar properties as discriminators",
		"discriminator_missing":       "you can not use `discriminatorValue` without declaring `discriminator`",
		"invalid_discriminator_value": "using invalid `disciminatorValue`: {cause}",
		"required_not_boolean":        "value of required facet should be boolean",
		"detached_facet":              "facet `{name}` is not attached to a type",
		"invalid_type":                "expected {expected}",
		"required":                    "required property missing: {name}",
		"unknown_key":                 "unknown property: {name}",
		"invalid_enum":                "value is not one of the enumerated values",
		"unknown_facet":               "using unknown facet: {name}",
		"missing_facet":               "missing required facet: {name}",
		"invalid_facet_value":         "invalid value for facet {name}: {cause}",
	},
	"ja": {
		"unknown_annotation":          "未知のアノテーション型です: {name}",
		"invalid_annotation":          "アノテーションの値が不正です: {cause}",
		"invalid_default":             "`defaultValue` が不正です: {cause}",
		"invalid_example":             "`example` が不正です: {cause}",
		"invalid_examples":            "`examples` が不正です",
		"examples_not_map":            "examples はマップである必要があります",
		"discriminator_not_object":    "`discriminator` はオブジェクト型でのみ使用できます",
		"discriminator_unknown":       "未知のプロパティを discriminator に使用しています: {name}",
		"discriminator_not_scalar":    "discriminator にはスカラープロパティのみ使用できます",
		"discriminator_missing":       "`discriminator` を宣言せずに `discriminatorValue` は使用できません",
		"invalid_discriminator_value": "`discriminatorValue` が不正です: {cause}",
		"required_not_boolean":        "required ファセットの値は真偽値である必要があります",
		"detached_facet":              "ファセット `{name}` は型に関連付けられていません",
		"invalid_type":                "型が不正です ({expected} が必要です)",
		"required":                    "必須プロパティが不足しています: {name}",
		"unknown_key":                 "未知のプロパティです: {name}",
		"invalid_enum":                "列挙値のいずれでもありません",
		"unknown_facet":               "未知のファセットです: {name}",
		"missing_facet":               "必須ファセットが不足しています: {name}",
		"invalid_facet_value":         "ファセット {name} の値が不正です: {cause}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		tmpl, ok = catalogs["en"][code]
	}
	if !ok {
		return code
	}
	return render(tmpl, data)
}

// render substitutes {key} placeholders. Unknown placeholders are left as-is.
func render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
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
