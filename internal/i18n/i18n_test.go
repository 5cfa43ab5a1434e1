package i18n

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	b := Default()

	assert.Equal(t, "Home", b.Lookup(English, "nav.home"))
	assert.Equal(t, "首頁", b.Lookup(Chinese, "nav.home"))
	assert.Equal(t, "Continuous Learning", b.Lookup(English, "careers.whyJoin.learning.title"))
	assert.Equal(t, "nav.nowhere", b.Lookup(English, "nav.nowhere"))
	assert.Equal(t, "nav.home", b.Lookup("fr", "nav.home"))
	// intermediate nodes are not leaves
	assert.Equal(t, "nav", b.Lookup(English, "nav"))
}

func TestDictionariesStayParallel(t *testing.T) {
	b := Default()
	require.ElementsMatch(t, []string{English, Chinese}, b.Locales())

	assert.Empty(t, b.Missing(English, Chinese), "keys missing from zh")
	assert.Empty(t, b.Missing(Chinese, English), "keys missing from en")

	for _, loc := range b.Locales() {
		for _, key := range b.Keys(loc) {
			assert.NotEqual(t, key, b.Lookup(loc, key), "%s has an empty or self-named value for %s", loc, key)
			assert.NotEmpty(t, b.Lookup(loc, key), "%s/%s", loc, key)
		}
	}
}

func TestMissingDetectsDrift(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("nav:\n  home: Home\n  news: News\n")},
		"locales/zh.yaml": {Data: []byte("nav:\n  home: 首頁\n")},
	}
	b, err := LoadFromFS(fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"nav.news"}, b.Missing(English, Chinese))
	assert.Empty(t, b.Missing(Chinese, English))
	assert.Equal(t, "nav.news", b.Lookup(Chinese, "nav.news"))
}

func TestLoadFromFSErrors(t *testing.T) {
	_, err := LoadFromFS(fstest.MapFS{})
	assert.EqualError(t, err, "no locale files found")

	_, err = LoadFromFS(fstest.MapFS{
		"locales/en.yaml": {Data: []byte("nav: [home\n")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse locales/en.yaml: ")
	assert.NotEqual(t, err, errors.Cause(err))
}

func TestTranslatorBindsLocale(t *testing.T) {
	tr := Default().Translator(Chinese)
	assert.Equal(t, "新聞", tr("nav.news"))
	assert.Equal(t, "News", T(English, "nav.news"))
}

func TestResolveLocale(t *testing.T) {
	r := httptest.NewRequest("GET", "/?lang=zh-TW", nil)
	loc, persist := ResolveLocale(r)
	assert.Equal(t, Chinese, loc)
	assert.True(t, persist)

	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(LanguageCookie(Chinese))
	r.Header.Set("Accept-Language", "en-US")
	loc, persist = ResolveLocale(r)
	assert.Equal(t, Chinese, loc)
	assert.False(t, persist)

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "zh-TW,zh;q=0.9,en;q=0.8")
	loc, _ = ResolveLocale(r)
	assert.Equal(t, Chinese, loc)

	r = httptest.NewRequest("GET", "/?lang=!!", nil)
	loc, persist = ResolveLocale(r)
	assert.Equal(t, English, loc)
	assert.False(t, persist)

	loc, _ = ResolveLocale(nil)
	assert.Equal(t, DefaultLocale, loc)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Chinese, Toggle(English))
	assert.Equal(t, English, Toggle(Chinese))
}
