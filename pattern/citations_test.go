package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tangerg/cleanforge/pattern"
)

func TestDOIPattern(t *testing.T) {
	assert.True(t, pattern.DOIPattern.MatchString("https://doi.org/10.1234/abc.5678"))
}

func TestDecimalPattern(t *testing.T) {
	assert.True(t, pattern.DecimalPattern.MatchString("pi is 3.14 roughly"))
}

func TestCitationPatterns_MatchKnownStyles(t *testing.T) {
	cases := []string{
		"(Smith, 2020)",
		"(Smith & Jones, 2020, p. 12)",
		"(Smith 23)",
		"[12]",
		"[1, 2]",
	}
	for _, c := range cases {
		matched := false
		for _, re := range pattern.CitationPatterns {
			if re.MatchString(c) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "expected a citation pattern to match %q", c)
	}
}

func TestShieldDecimalsAndDOIs_ProtectsAndRestores(t *testing.T) {
	in := "See (Smith, 2020) at https://doi.org/10.1234/abc.5678 for details, e.g. 3.14."
	s := pattern.ShieldDecimalsAndDOIs(in)
	assert.NotContains(t, s.Text, "10.1234/abc.5678")
	assert.NotContains(t, s.Text, "3.14")

	restored := s.Unshield(s.Text)
	require.Equal(t, in, restored)
}
