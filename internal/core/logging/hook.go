package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the language and string id from the event context
// and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if lang := GetLanguage(ctx); lang != "" {
		e.Str("lang", lang)
	}

	if id := GetStringID(ctx); id != "" {
		e.Str("string_id", id)
	}
}
