// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// DefaultLang is used when the request does not ask for a supported language.
const DefaultLang = "vi"

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds one flat key -> message table per language.
type Bundle struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

func NewBundle(fallback string) *Bundle {
	return &Bundle{messages: make(map[string]map[string]string), fallback: fallback}
}

// Load reads every <lang>.json file in dir.
func (b *Bundle) Load(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to list locales in %s: %w", dir, err)
	}

	for _, entry := range entries {
		lang, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}

		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale %s: %w", lang, err)
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("failed to parse locale %s: %w", lang, err)
		}

		b.mu.Lock()
		b.messages[lang] = table
		b.mu.Unlock()
	}
	return nil
}

func (b *Bundle) lookup(lang, key string) (string, bool) {
	if table, ok := b.messages[lang]; ok {
		if text, ok := table[key]; ok {
			return text, true
		}
	}
	return "", false
}

// T renders key in lang, then in the fallback language, and finally returns
// the key itself.
func (b *Bundle) T(lang, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	text, ok := b.lookup(lang, key)
	if !ok {
		text, ok = b.lookup(b.fallback, key)
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Languages lists the loaded languages in sorted order.
func (b *Bundle) Languages() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]string, 0, len(b.messages))
	for lang := range b.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

var (
	defaultBundle *Bundle
	initOnce      sync.Once
	initErr       error
)

// Initialize loads the embedded locales once.
func Initialize() error {
	initOnce.Do(func() {
		b := NewBundle(DefaultLang)
		if initErr = b.Load(localeFS, "locales"); initErr == nil {
			defaultBundle = b
		}
	})
	return initErr
}

// T translates with the embedded locales. Before Initialize it returns key.
func T(lang, key string, args ...interface{}) string {
	if defaultBundle == nil {
		return key
	}
	return defaultBundle.T(lang, key, args...)
}

func GetSupportedLanguages() []string {
	if defaultBundle == nil {
		return []string{DefaultLang}
	}
	return defaultBundle.Languages()
}
