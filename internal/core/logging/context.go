package logging

import "context"

type contextKey string

const (
	languageKey contextKey = "language"
	stringIDKey contextKey = "string_id"
)

// WithLanguage adds the target language under review to the context.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// WithStringID adds the id of the record being persisted to the context.
func WithStringID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, stringIDKey, id)
}

// GetLanguage retrieves the language from the context.
// Returns empty string if not present.
func GetLanguage(ctx context.Context) string {
	if lang, ok := ctx.Value(languageKey).(string); ok {
		return lang
	}
	return ""
}

// GetStringID retrieves the record id from the context.
// Returns empty string if not present.
func GetStringID(ctx context.Context) string {
	if id, ok := ctx.Value(stringIDKey).(string); ok {
		return id
	}
	return ""
}
