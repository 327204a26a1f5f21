package database

import (
	"fmt"
	"strings"
)

// SearchQueryParser turns free text from the project gallery search box
// into a PostgreSQL tsquery.
type SearchQueryParser struct {
	minLength int
	maxLength int
}

// NewSearchQueryParser creates a parser accepting 2 to 200 characters.
func NewSearchQueryParser() *SearchQueryParser {
	return &SearchQueryParser{
		minLength: 2,
		maxLength: 200,
	}
}

// Parse trims, strips tsquery operators and quoting, lowercases and joins
// the remaining words with " & ".
//
//	"React Native" → "react & native"
//	"go (cli)"     → "go & cli"
func (p *SearchQueryParser) Parse(query string) (string, error) {
	query = strings.TrimSpace(query)

	if len(query) < p.minLength {
		return "", fmt.Errorf("search query must be at least %d characters", p.minLength)
	}

	if len(query) > p.maxLength {
		return "", fmt.Errorf("search query too long (max %d characters)", p.maxLength)
	}

	words := strings.Fields(p.sanitize(query))
	if len(words) == 0 {
		return "", fmt.Errorf("search query is empty")
	}

	valid := p.filterValidWords(words)
	if len(valid) == 0 {
		return "", fmt.Errorf("no valid search terms")
	}

	return strings.Join(valid, " & "), nil
}

var searchSanitizer = strings.NewReplacer(
	`"`, " ",
	"'", " ",
	"(", " ",
	")", " ",
	"&", " ",
	"|", " ",
	"!", " ",
	":", " ",
	"*", " ",
	"<", " ",
	">", " ",
	`\`, " ",
)

func (p *SearchQueryParser) sanitize(query string) string {
	return searchSanitizer.Replace(query)
}

func (p *SearchQueryParser) filterValidWords(words []string) []string {
	valid := []string{}
	for _, word := range words {
		if len(word) >= 2 {
			valid = append(valid, strings.ToLower(word))
		}
	}
	return valid
}
