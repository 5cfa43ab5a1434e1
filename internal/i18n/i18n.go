// Package i18n holds the site dictionaries and resolves the active locale for
// a request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported locales.
const (
	English = "en"
	Chinese = "zh"
)

// DefaultLocale is used when nothing else matches.
const DefaultLocale = English

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Bundle maps locale -> dotted key -> text.
type Bundle struct {
	dicts map[string]map[string]string
}

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded bundle.
func Default() *Bundle {
	return defaultBundle
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFromFS reads every locales/<locale>.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "glob locales")
	}
	if len(paths) == 0 {
		return nil, errors.New("no locale files found")
	}
	b := &Bundle{dicts: make(map[string]map[string]string, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", p)
		}
		var tree map[string]interface{}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrapf(err, "parse %s", p)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		b.dicts[strings.TrimSuffix(path.Base(p), ".yaml")] = flat
	}
	return b, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Locales returns the loaded locale names, sorted.
func (b *Bundle) Locales() []string {
	names := make([]string, 0, len(b.dicts))
	for name := range b.dicts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether locale was loaded.
func (b *Bundle) Has(locale string) bool {
	_, ok := b.dicts[locale]
	return ok
}

// Lookup returns the text at key for locale. A missing key, or an unknown
// locale, yields the key itself so the gap is visible on the page.
func (b *Bundle) Lookup(locale, key string) string {
	if dict, ok := b.dicts[locale]; ok {
		if v, ok := dict[key]; ok {
			return v
		}
	}
	return key
}

// Translator returns a lookup bound to locale.
func (b *Bundle) Translator(locale string) func(key string) string {
	return func(key string) string {
		return b.Lookup(locale, key)
	}
}

// Keys returns every key defined for locale, sorted.
func (b *Bundle) Keys(locale string) []string {
	dict := b.dicts[locale]
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing lists keys defined in base but absent from other.
func (b *Bundle) Missing(base, other string) []string {
	target := b.dicts[other]
	var missing []string
	for _, k := range b.Keys(base) {
		if _, ok := target[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// T looks key up in the default bundle.
func T(locale, key string) string {
	return defaultBundle.Lookup(locale, key)
}
