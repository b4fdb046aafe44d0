package props

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EditorTestSuite struct {
	suite.Suite
}

func TestEditorTestSuite(t *testing.T) {
	suite.Run(t, new(EditorTestSuite))
}

func (s *EditorTestSuite) assertOutcome(out Outcome, expectedLines []string, expectedMatched, expectedUpdated bool) {
	s.Equal(expectedMatched, out.Matched, "whether the key was matched in the properties file")
	s.Equal(expectedUpdated, out.Updated, "whether the effective value in the properties file was updated")
	s.Require().Len(out.Lines, len(expectedLines), "expected number of lines")
	for i, line := range expectedLines {
		s.Equal(line, out.Lines[i], "expected line %d to match", i+1)
	}
}

func (s *EditorTestSuite) TestParsesLines() {
	lines := []string{"#comment", "foo=bar"}
	s.assertOutcome(UpdateProperty(lines, "foo", "bar"), lines, true, false)
}

func (s *EditorTestSuite) TestIgnoresWhitespace() {
	lines := []string{"  foo  =  bar  "}
	s.assertOutcome(UpdateProperty(lines, "foo", "bar"), lines, true, false)
}

func (s *EditorTestSuite) TestIgnoresCommentedOutValue() {
	lines := []string{"#foo=bar"}
	s.assertOutcome(UpdateProperty(lines, "foo", "bar"), lines, false, false)
}

func (s *EditorTestSuite) TestUpdatesValue() {
	out := UpdateProperty([]string{"foo=baz"}, "foo", "bar")
	s.assertOutcome(out, []string{"foo=bar"}, true, true)
}

func (s *EditorTestSuite) TestUpdatedValueDropsWhitespace() {
	out := UpdateProperty([]string{"   foo  =    baz   "}, "foo", "bar")
	s.assertOutcome(out, []string{"foo=bar"}, true, true)
}

func (s *EditorTestSuite) TestLastValueDeterminesUpdated() {
	lines := []string{"   foo  =    bar   ", "foo=baz"}
	out := UpdateProperty(lines, "foo", "bar")
	s.assertOutcome(out, []string{"   foo  =    bar   ", "foo=bar"}, true, true)
}

func (s *EditorTestSuite) TestNotUpdatedWhenLastValueMatchesDespiteRewritingEarlierLines() {
	lines := []string{"   foo  =    bar   ", "foo=baz"}
	out := UpdateProperty(lines, "foo", "baz")
	s.assertOutcome(out, []string{"foo=baz", "foo=baz"}, true, false)
}

func (s *EditorTestSuite) TestKeyPrefixOfAnotherKeyDoesNotMatch() {
	lines := []string{"fooBar=1", "foo.version=1", "xfoo=1"}
	s.assertOutcome(UpdateProperty(lines, "foo", "2"), lines, false, false)
}

func (s *EditorTestSuite) TestKeyIsMatchedLiterally() {
	lines := []string{"fooXversion=1", "foo.version=1"}
	out := UpdateProperty(lines, "foo.version", "2")
	s.assertOutcome(out, []string{"fooXversion=1", "foo.version=2"}, true, true)
}

func (s *EditorTestSuite) TestKeyIsTrimmedForMatchingButWrittenAsGiven() {
	out := UpdateProperty([]string{"foo=baz"}, " foo ", "bar")
	s.assertOutcome(out, []string{" foo =bar"}, true, true)
}

func (s *EditorTestSuite) TestKeyIsCaseSensitive() {
	lines := []string{"FOO=baz"}
	s.assertOutcome(UpdateProperty(lines, "foo", "bar"), lines, false, false)
}

func (s *EditorTestSuite) TestInlineTextAfterValueIsReplaced() {
	out := UpdateProperty([]string{"foo = baz # pinned"}, "foo", "bar")
	s.assertOutcome(out, []string{"foo=bar"}, true, true)
}

func (s *EditorTestSuite) TestEmptyValue() {
	lines := []string{"foo=", "bar = "}
	s.assertOutcome(UpdateProperty(lines, "foo", ""), lines, true, false)

	out := UpdateProperty(lines, "bar", "1")
	s.assertOutcome(out, []string{"foo=", "bar=1"}, true, true)
}

func (s *EditorTestSuite) TestValueContainingEquals() {
	lines := []string{"jvmArgs=-Dx=1"}
	s.assertOutcome(UpdateProperty(lines, "jvmArgs", "-Dx=1"), lines, true, false)
}

func (s *EditorTestSuite) TestLineWithNextLineCharacterIsLeftAlone() {
	lines := []string{"foo=a\u0085"}
	out := UpdateProperty(lines, "foo", "b")
	s.assertOutcome(out, []string{"foo=a\u0085"}, false, false)
}

func (s *EditorTestSuite) TestEmptyInput() {
	out := UpdateProperty(nil, "foo", "bar")
	s.assertOutcome(out, []string{}, false, false)
	s.NotNil(out.Lines)
}

func (s *EditorTestSuite) TestInputIsNotMutated() {
	lines := []string{"foo=baz", "# keep"}
	_ = UpdateProperty(lines, "foo", "bar")
	s.Equal([]string{"foo=baz", "# keep"}, lines)
}

func (s *EditorTestSuite) TestInvariants() {
	inputs := [][]string{
		{},
		{"", "   ", "#"},
		{"#comment", "foo=bar", "", "baz = qux"},
		{"foo=1", "foo = 2", "  foo=3  ", "#foo=4"},
		{"foo", "foo:bar", "foo bar", "= foo"},
		{"foobar=1", "barfoo=2", "foo=bar=baz"},
	}
	values := []string{"bar", "1", "3", ""}

	for _, lines := range inputs {
		for _, value := range values {
			out := UpdateProperty(lines, "foo", value)
			s.Len(out.Lines, len(lines))

			anyMatch := false
			lastValue := ""
			for i, line := range lines {
				current, ok := MatchLine("foo", line)
				if !ok {
					s.Equal(line, out.Lines[i], "non-matching line %q must be untouched", line)
					continue
				}
				anyMatch = true
				lastValue = current
			}
			s.Equal(anyMatch, out.Matched)
			s.Equal(anyMatch && trim(lastValue) != value, out.Updated)

			again := UpdateProperty(out.Lines, "foo", value)
			if out.Matched {
				s.True(again.Matched)
				s.False(again.Updated)
			}
			s.Equal(out.Lines, again.Lines, "a second pass must not change anything")
		}
	}
}
