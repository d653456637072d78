// Package wizard provides the finite-state sequencer that drives the
// multi-step CV form. Sections form a strictly linear order; advancing
// past the end or retreating past the start are safe no-ops.
package wizard

// Section identifies one step of the wizard.
type Section string

// Wizard sections in their fixed linear order.
const (
	SectionWelcome         Section = "welcome"
	SectionPersonalDetails Section = "personalDetails"
	SectionProfile         Section = "profile"
	SectionEducation       Section = "education"
	SectionExperience      Section = "experience"
	SectionSkills          Section = "skills"
	SectionFinal           Section = "final"
)

// order is the single source of truth for section sequencing. The
// transition table below is derived from it so an illegal transition
// cannot be introduced by editing one side only.
var order = []Section{
	SectionWelcome,
	SectionPersonalDetails,
	SectionProfile,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionFinal,
}

// transition holds the advance and retreat targets for one section.
type transition struct {
	advance Section
	retreat Section
}

var transitions = buildTransitions()

func buildTransitions() map[Section]transition {
	table := make(map[Section]transition, len(order))
	for i, section := range order {
		t := transition{advance: section, retreat: section}
		if i+1 < len(order) {
			t.advance = order[i+1]
		}
		if i > 0 {
			t.retreat = order[i-1]
		}
		table[section] = t
	}
	return table
}

// Navigator tracks the current wizard position.
type Navigator struct {
	current Section
}

// New returns a navigator positioned at the Welcome section.
func New() *Navigator {
	return &Navigator{current: SectionWelcome}
}

// Current returns the current section.
func (n *Navigator) Current() Section {
	return n.current
}

// Advance moves one step forward along the fixed order. At the Final
// section it is a no-op; only Reset returns to Welcome from there.
func (n *Navigator) Advance() Section {
	n.current = transitions[n.current].advance
	return n.current
}

// Retreat moves one step backward. At Welcome it is a no-op.
func (n *Navigator) Retreat() Section {
	n.current = transitions[n.current].retreat
	return n.current
}

// Reset returns to Welcome. The resume record is deliberately left
// untouched; starting over replays the wizard, not the data.
func (n *Navigator) Reset() Section {
	n.current = SectionWelcome
	return n.current
}

// ProgressSegment describes one segment of the progress indicator.
type ProgressSegment struct {
	Section Section `json:"section"`
	Filled  bool    `json:"filled"`
}

// Progress returns one segment per non-Welcome section, filled up to and
// including the current section. At Welcome no segment is filled.
func (n *Navigator) Progress() []ProgressSegment {
	segments := make([]ProgressSegment, 0, len(order)-1)
	reached := n.current != SectionWelcome
	for _, section := range order[1:] {
		segments = append(segments, ProgressSegment{Section: section, Filled: reached})
		if section == n.current {
			reached = false
		}
	}
	return segments
}
