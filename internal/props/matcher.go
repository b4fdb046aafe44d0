package props

import (
	"regexp"
	"strings"
)

// valueChars is any character but a line terminator (\n, \r, NEL, LS, PS). A line holding one of these
// never matches.
const valueChars = `[^\n\r\x{85}\x{2028}\x{2029}]`

// Matcher recognizes `key=value` lines for a single key.
// The key is trimmed and matched literally; whitespace is allowed around the key and before the `=`.
type Matcher struct {
	key string
	re  *regexp.Regexp
}

func NewMatcher(key string) *Matcher {
	k := strings.TrimSpace(key)
	return &Matcher{
		key: k,
		re:  regexp.MustCompile(`^\s*` + regexp.QuoteMeta(k) + `\s*=(` + valueChars + `*)$`),
	}
}

// Key returns the trimmed key.
func (m *Matcher) Key() string {
	return m.key
}

// Match returns the raw, untrimmed value of line when it defines the key.
func (m *Matcher) Match(line string) (string, bool) {
	sub := m.re.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	return sub[1], true
}

// MatchLine is the one-shot form of Matcher.Match.
func MatchLine(key, line string) (string, bool) {
	return NewMatcher(key).Match(line)
}
