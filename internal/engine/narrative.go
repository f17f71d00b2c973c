package engine

// Narrative resolves static content keys to text for one locale.
// Unknown keys resolve to the key itself.
type Narrative interface {
	Text(key string, data map[string]any) string
	Locale() string
	Version() string
}

// Content hands out a Narrative for the best match among the preferred
// languages. Implementations may swap their tables at runtime.
type Content interface {
	Localize(langs ...string) Narrative
}
