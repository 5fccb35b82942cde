package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// LocaleMatcher picks a supported language code for a request.
type LocaleMatcher struct {
	supported []string
	matcher   language.Matcher
	fallback  string
}

// NewLocaleMatcher builds a matcher over the supported codes. The fallback is
// placed first so it wins when nothing matches.
func NewLocaleMatcher(fallback string, supported []string) *LocaleMatcher {
	codes := []string{fallback}
	for _, s := range supported {
		if s != fallback {
			codes = append(codes, s)
		}
	}
	tags := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		tags = append(tags, language.Make(c))
	}
	return &LocaleMatcher{supported: codes, matcher: language.NewMatcher(tags), fallback: fallback}
}

// Fallback is the default language code.
func (m *LocaleMatcher) Fallback() string { return m.fallback }

// Match resolves an explicit language code or, when that is empty, an
// Accept-Language header value.
func (m *LocaleMatcher) Match(explicit, acceptLanguage string) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		for _, c := range m.supported {
			if strings.EqualFold(c, explicit) {
				return c
			}
		}
		acceptLanguage = explicit
	}
	if acceptLanguage == "" {
		return m.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return m.fallback
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return m.fallback
	}
	return m.supported[idx]
}
