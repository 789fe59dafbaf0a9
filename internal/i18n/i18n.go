package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"finitefield.org/rustguide-web/internal/locale"
)

// Bundle holds UI strings for every supported locale.
type Bundle struct {
	dict     map[locale.Locale]map[string]string
	fallback locale.Locale
}

// Load reads <dir>/<locale>.json for each supported locale. Only the
// fallback locale's file is mandatory.
func Load(dir string, fallback locale.Locale) (*Bundle, error) {
	if !fallback.Valid() {
		return nil, fmt.Errorf("i18n: unsupported fallback locale %q", fallback)
	}
	b := &Bundle{
		dict:     map[locale.Locale]map[string]string{},
		fallback: fallback,
	}
	for _, l := range locale.Supported() {
		path := filepath.Join(dir, string(l)+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			// allow missing file for non-default locales
			if l == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	return b, nil
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() locale.Locale { return b.fallback }

// Loaded lists locales with a dictionary, in switcher order.
func (b *Bundle) Loaded() []locale.Locale {
	var out []locale.Locale
	for _, l := range locale.Supported() {
		if _, ok := b.dict[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang locale.Locale, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// MissingKeys reports, per loaded locale, the keys present in the fallback
// dictionary but absent from that locale. Locales without gaps are omitted.
func (b *Bundle) MissingKeys() map[locale.Locale][]string {
	out := map[locale.Locale][]string{}
	ref := b.dict[b.fallback]
	for l, m := range b.dict {
		if l == b.fallback {
			continue
		}
		var missing []string
		for k := range ref {
			if _, ok := m[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			out[l] = missing
		}
	}
	return out
}
