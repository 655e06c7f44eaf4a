package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a component name under
// "cmp".
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Session returns the logger of a review session: the component logger
// with the target language and the backend mode fixed on every event, for
// code that logs without a request context.
func Session(name, lang string, offline bool) zerolog.Logger {
	return Component(name).With().Str("lang", lang).Bool("offline", offline).Logger()
}
