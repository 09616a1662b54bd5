package usecase

import "conflive/internal/domain/entity"

// localeAliases maps device locale identifiers to canonical backend language
// codes. Chinese script/region variants and Portuguese need explicit entries
// because two-letter truncation is ambiguous for them.
var localeAliases = map[string]string{
	// Chinese variants
	"zh-Hant":    "zh-TW", // Traditional Chinese
	"zh-Hant-TW": "zh-TW",
	"zh-Hant-HK": "zh-TW",
	"zh-Hant-MO": "zh-TW",
	"zh-Hans":    "zh-CN", // Simplified Chinese
	"zh-Hans-CN": "zh-CN",
	"zh":         "zh-CN", // Default Chinese maps to Simplified

	// Cantonese
	"yue":      "yue",
	"yue-Hant": "yue",
	"zh-HK":    "yue", // Hong Kong commonly uses Cantonese

	// Portuguese variants
	"pt-BR": "pt-BR", // Brazilian Portuguese
	"pt":    "pt",    // European Portuguese
	"pt-PT": "pt",

	// Japanese variants
	"ja-JP": "ja",

	// Korean variants
	"ko-KR": "ko",

	// Direct mappings for other languages
	"ar": "ar",
	"hr": "hr",
	"cs": "cs",
	"nl": "nl",
	"en": "en",
	"fi": "fi",
	"fr": "fr",
	"de": "de",
	"el": "el",
	"he": "he",
	"hi": "hi",
	"hu": "hu",
	"id": "id",
	"it": "it",
	"ja": "ja",
	"km": "km",
	"ko": "ko",
	"ms": "ms",
	"mn": "mn",
	"fa": "fa",
	"pl": "pl",
	"ro": "ro",
	"ru": "ru",
	"sk": "sk",
	"es": "es",
	"sw": "sw",
	"sv": "sv",
	"tl": "tl",
	"th": "th",
	"tr": "tr",
	"uk": "uk",
	"uz": "uz",
	"vi": "vi",
	"ne": "ne",
	"ta": "ta",
	"ur": "ur",
	"si": "si",
	"lo": "lo",
}

// ResolveInitialLanguage picks the initial display language for a device
// locale from the set of codes the backend supports. It always returns a
// code; "en" is the final fallback. First match wins:
//
//  1. exact match on the full locale identifier
//  2. alias-table lookup on the full identifier
//  3. two-letter base language truncation
//  4. alias-table lookup on the truncated base code
func ResolveInitialLanguage(preferredLocale string, available map[string]bool) string {
	if available[preferredLocale] {
		return preferredLocale
	}

	if mapped, ok := localeAliases[preferredLocale]; ok && available[mapped] {
		return mapped
	}

	base := preferredLocale
	if len(base) > 2 {
		base = base[:2]
	}
	if available[base] {
		return base
	}

	if mapped, ok := localeAliases[base]; ok && available[mapped] {
		return mapped
	}

	return "en"
}

// AvailableCodes collects the language codes of a language list into a set
// suitable for ResolveInitialLanguage.
func AvailableCodes(langList []entity.LanguageItem) map[string]bool {
	codes := make(map[string]bool, len(langList))
	for _, item := range langList {
		codes[item.LangCode] = true
	}
	return codes
}
