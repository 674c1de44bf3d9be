// Package i18n provides locale resolution and message printing for the API and CLI.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Message keys. The English text doubles as the key, as x/text expects.
const (
	MsgSuccessRate      = "Success percentage must be a number between 0 and 100"
	MsgMaxAttempts      = "Maximum attempts must be a positive number"
	MsgMaxAttemptsLimit = "Maximum attempts must not exceed %d"
	MsgInvalidBody      = "Invalid request body"
	MsgInternal         = "Internal server error"
	MsgNotFound         = "Route not found"
	MsgRateLimited      = "Too many requests, try again shortly"
	MsgServerUp         = "Server is running!"
	MsgAPIDescription   = "API for simulating attempts based on a success percentage"

	MsgResultsTitle      = "Results of %d simulations"
	MsgAverageAttempts   = "Average attempts:"
	MsgSuccesses         = "Successes:"
	MsgFailures          = "Failures:"
	MsgSuccessPercentage = "Success percentage:"
	MsgLimitReached      = "Limit reached:"
	MsgLimitReachedValue = "Yes (some simulation)"
	MsgTheoretical       = "Theoretical probability:"
	MsgDetails           = "Simulation details:"
	MsgSimulation        = "Simulation %d:"
	MsgAttempts          = "%d attempts"
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag matches a user-supplied language string ("pt", "pt-BR", "en-US")
// against the supported tags.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	return MatchTags([]language.Tag{tag}), true
}

// MatchTags returns the best supported tag for the preferences given.
func MatchTags(tags []language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

// ResolveTag determines the best language tag for the request: the lang query
// parameter first, then Accept-Language, then fallback.
func ResolveTag(r *http.Request, fallback language.Tag) language.Tag {
	if r == nil {
		return fallback
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return MatchTags(tags)
		}
	}

	return fallback
}

// Translate renders key for tag, formatting args into it.
func Translate(tag language.Tag, key string, args ...any) string {
	return Printer(tag).Sprintf(key, args...)
}
