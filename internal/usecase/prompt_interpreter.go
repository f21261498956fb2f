package usecase

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// anchorToken is moved to the front of a query whenever present. It is the
// dominant category term in the catalogs and anchors ambiguous prompts.
const anchorToken = "milk"

// nonAlphanumericRegex matches everything tokenization treats as a separator
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// PromptInterpreter turns a free-text shopping prompt into a canonical query
type PromptInterpreter struct {
	stopWords map[string]struct{}
	logger    *logrus.Logger
}

// NewPromptInterpreter creates an interpreter that drops the given stop words.
// The set is only read, so it may be shared.
func NewPromptInterpreter(stopWords map[string]struct{}, logger *logrus.Logger) *PromptInterpreter {
	if stopWords == nil {
		stopWords = map[string]struct{}{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PromptInterpreter{
		stopWords: stopWords,
		logger:    logger,
	}
}

// Parse normalizes prompt into a query: lowercase alphanumeric tokens with
// stop words removed and the anchor token first. If every token is filtered
// out, the trimmed lowercase prompt is returned instead, so a non-empty
// prompt never yields an empty query.
func (p *PromptInterpreter) Parse(prompt string) string {
	tokens := normalizeTokens(prompt)

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := p.stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}

	var query string
	if len(kept) == 0 {
		query = strings.ToLower(strings.TrimSpace(prompt))
	} else {
		query = strings.Join(anchorFirst(kept), " ")
	}

	p.logger.WithFields(logrus.Fields{
		"prompt":   prompt,
		"query":    query,
		"fallback": len(kept) == 0,
	}).Debug("Prompt interpreted")

	return query
}

// anchorFirst moves every occurrence of the anchor token to a single leading
// position and keeps the relative order of the rest
func anchorFirst(tokens []string) []string {
	found := false
	rest := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == anchorToken {
			found = true
			continue
		}
		rest = append(rest, tok)
	}
	if !found {
		return tokens
	}
	return append([]string{anchorToken}, rest...)
}

// normalizeTokens lowercases s, replaces every non-alphanumeric character
// with a space and splits on whitespace
func normalizeTokens(s string) []string {
	cleaned := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Fields(cleaned)
}
