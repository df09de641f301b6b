// Package icons resolves location icon keys to renderable glyphs.
//
// Keys are opaque strings stored with each location. Unknown keys resolve
// to the fallback glyph, so new keys can be introduced without touching
// stored data.
package icons

import "sync"

// Fallback is rendered for keys without a registered glyph.
const Fallback = "📦"

var (
	mu     sync.RWMutex
	glyphs = map[string]string{
		"home":      "🏠",
		"sofa":      "🛋️",
		"bed":       "🛏️",
		"utensils":  "🍴",
		"warehouse": "🏚️",
		"box":       "📦",
		"archive":   "🗄️",
		"heart":     "❤️",
		"shirt":     "👕",
		"book":      "📚",
		"tools":     "🧰",
	}
)

// Lookup returns the glyph for key, or Fallback.
func Lookup(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if g, ok := glyphs[key]; ok {
		return g
	}
	return Fallback
}

// Register adds or replaces the glyph for key.
func Register(key, glyph string) {
	mu.Lock()
	defer mu.Unlock()
	glyphs[key] = glyph
}

// Known reports whether key has a registered glyph.
func Known(key string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := glyphs[key]
	return ok
}
