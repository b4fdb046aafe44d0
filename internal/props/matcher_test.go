package props

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func trim(s string) string { return strings.TrimSpace(s) }

func TestMatchLine(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		line  string
		value string
		ok    bool
	}{
		{"plain", "foo", "foo=bar", "bar", true},
		{"whitespace kept in value", "foo", "  foo  =  bar  ", "  bar  ", true},
		{"tabs", "foo", "\tfoo\t=\tbar", "\tbar", true},
		{"empty value", "foo", "foo=", "", true},
		{"value with equals", "foo", "foo=a=b", "a=b", true},
		{"trimmed key", "  foo ", "foo=bar", "bar", true},
		{"comment", "foo", "#foo=bar", "", false},
		{"indented comment", "foo", "  # foo=bar", "", false},
		{"longer key", "foo", "foobar=baz", "", false},
		{"key suffix", "foo", "xfoo=baz", "", false},
		{"colon separator", "foo", "foo:bar", "", false},
		{"no separator", "foo", "foo bar", "", false},
		{"regexp metacharacters quoted", "a.b", "aXb=1", "", false},
		{"regexp metacharacters literal", "a.b", "a.b=1", "1", true},
		{"blank line", "foo", "", "", false},
		{"next line in value", "foo", "foo=a\u0085", "", false},
		{"line separator in value", "foo", "foo=a\u2028b", "", false},
		{"carriage return in value", "foo", "foo=a\rb", "", false},
		{"latin-1 value", "foo", "foo=caf\u00e9\u00ff", "caf\u00e9\u00ff", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := MatchLine(tc.key, tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestMatcherKey(t *testing.T) {
	assert.Equal(t, "foo", NewMatcher(" foo\t").Key())
}
