package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// advanceTo steps a fresh navigator forward until it reaches target.
func advanceTo(t *testing.T, n *Navigator, target Section) {
	t.Helper()
	for n.Current() != target {
		before := n.Current()
		if n.Advance() == before {
			t.Fatalf("never reached section %q", target)
		}
	}
}

func TestNew_StartsAtWelcome(t *testing.T) {
	n := New()
	assert.Equal(t, SectionWelcome, n.Current())
}

func TestAdvance_WalksLinearOrder(t *testing.T) {
	n := New()

	assert.Equal(t, SectionPersonalDetails, n.Advance())
	assert.Equal(t, SectionProfile, n.Advance())
	assert.Equal(t, SectionEducation, n.Advance())
	assert.Equal(t, SectionExperience, n.Advance())
	assert.Equal(t, SectionSkills, n.Advance())
	assert.Equal(t, SectionFinal, n.Advance())
}

func TestAdvance_FromFinalIsNoOp(t *testing.T) {
	n := New()
	for i := 0; i < 6; i++ {
		n.Advance()
	}
	require.Equal(t, SectionFinal, n.Current())

	assert.Equal(t, SectionFinal, n.Advance())
	assert.Equal(t, SectionFinal, n.Advance())
}

func TestRetreat_FromPersonalDetailsYieldsWelcome(t *testing.T) {
	n := New()
	n.Advance()
	require.Equal(t, SectionPersonalDetails, n.Current())

	assert.Equal(t, SectionWelcome, n.Retreat())
}

func TestRetreat_FromWelcomeIsNoOp(t *testing.T) {
	n := New()

	assert.Equal(t, SectionWelcome, n.Retreat())
	assert.Equal(t, SectionWelcome, n.Current())
}

func TestAdvance_FromSkillsYieldsFinal(t *testing.T) {
	n := New()
	advanceTo(t, n, SectionSkills)

	assert.Equal(t, SectionFinal, n.Advance())
}

func TestReset_ReturnsToWelcome(t *testing.T) {
	n := New()
	advanceTo(t, n, SectionFinal)

	assert.Equal(t, SectionWelcome, n.Reset())
}

func TestProgress_AtWelcomeNothingFilled(t *testing.T) {
	n := New()

	segments := n.Progress()
	require.Len(t, segments, 6)
	for _, seg := range segments {
		assert.False(t, seg.Filled)
	}
}

func TestProgress_FilledThroughCurrent(t *testing.T) {
	n := New()
	advanceTo(t, n, SectionEducation)

	segments := n.Progress()
	require.Len(t, segments, 6)

	assert.True(t, segments[0].Filled)  // personalDetails
	assert.True(t, segments[1].Filled)  // profile
	assert.True(t, segments[2].Filled)  // education
	assert.False(t, segments[3].Filled) // experience
	assert.False(t, segments[4].Filled)
	assert.False(t, segments[5].Filled)
}

func TestProgress_AtFinalAllFilled(t *testing.T) {
	n := New()
	advanceTo(t, n, SectionFinal)

	for _, seg := range n.Progress() {
		assert.True(t, seg.Filled)
	}
}
