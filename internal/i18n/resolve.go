package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to switch language.
	LangParam = "lang"
	// LangCookieName keeps the chosen language for the browser session.
	LangCookieName = "avocado_lang"
)

var supportedTags = []language.Tag{
	language.English,
	language.TraditionalChinese,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Normalize maps a language value (en, en-US, zh, zh-TW, zh-Hant...) to a
// supported locale.
func Normalize(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	return localeForTag(tag), true
}

func localeForTag(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "zh" {
		return Chinese
	}
	return English
}

// ResolveLocale picks the locale for r. The bool reports whether the choice
// came from the query parameter and should be persisted.
func ResolveLocale(r *http.Request) (string, bool) {
	if r == nil {
		return DefaultLocale, false
	}
	if loc, ok := Normalize(r.URL.Query().Get(LangParam)); ok {
		return loc, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if loc, ok := Normalize(cookie.Value); ok {
			return loc, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := tagMatcher.Match(tags...)
			if conf != language.No {
				return localeForTag(supportedTags[idx]), false
			}
		}
	}
	return DefaultLocale, false
}

// LanguageCookie builds the session cookie holding locale. It has no expiry,
// so the choice lasts until the browser session ends.
func LanguageCookie(locale string) *http.Cookie {
	return &http.Cookie{
		Name:     LangCookieName,
		Value:    locale,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Toggle returns the other supported locale.
func Toggle(locale string) string {
	if locale == Chinese {
		return English
	}
	return Chinese
}
