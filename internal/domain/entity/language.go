package entity

// LangSet maps language codes to their display names for one specific target
// language. It is replaced wholesale whenever the selected language changes.
type LangSet struct {
	Data map[string]string `json:"data"`
}

// LangCodingKey returns the display name for a language code, or "" if the
// set has no entry for it.
func (s LangSet) LangCodingKey(langCode string) string {
	return s.Data[langCode]
}

// LanguageItem is one entry of the backend's supported-language list.
type LanguageItem struct {
	ID       string `json:"id"`
	LangCode string `json:"lang_code"`
	Name     string `json:"name"`
}
