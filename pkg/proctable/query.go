package proctable

import (
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
)

// Query is one widget's search configuration. Text is matched against the
// process name, or the full command line when MatchCommand is set.
type Query struct {
	Text         string
	IgnoreCase   bool
	WholeWord    bool
	Regex        bool
	MatchCommand bool
}

// Matcher is a compiled Query. The zero matcher and a nil matcher both
// match every record.
type Matcher struct {
	re           *regexp.Regexp
	matchCommand bool
	invalid      bool
}

// Compile builds a matcher from the query. Literal queries are quoted
// before compilation so metacharacters match themselves; WholeWord wraps
// the pattern in word boundaries and IgnoreCase prepends the flag.
//
// An invalid regular expression returns a match-everything matcher together
// with the error: the caller keeps filtering (rows stay visible while the
// user finishes typing the pattern) and surfaces the invalid state in the
// widget header.
func Compile(q Query) (*Matcher, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return &Matcher{matchCommand: q.MatchCommand}, nil
	}

	pattern := text
	if !q.Regex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if q.WholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if q.IgnoreCase {
		pattern = `(?i)` + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return &Matcher{matchCommand: q.MatchCommand, invalid: true},
			fmt.Errorf("invalid search pattern %q: %w", q.Text, err)
	}
	return &Matcher{re: re, matchCommand: q.MatchCommand}, nil
}

// Matches reports whether the record passes the filter.
func (m *Matcher) Matches(rec harvest.ProcessRecord) bool {
	if m == nil || m.re == nil {
		return true
	}
	if m.matchCommand {
		return m.re.MatchString(rec.Command)
	}
	return m.re.MatchString(rec.Name)
}

// Invalid reports whether the matcher came from a pattern that failed to
// compile and is passing everything through as the fallback.
func (m *Matcher) Invalid() bool {
	return m != nil && m.invalid
}
