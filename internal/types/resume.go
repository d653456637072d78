// Package types provides type definitions for structured data used throughout the FrameMe system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/google/uuid"
)

// Field length caps enforced at the input boundary (request validation),
// mirrored here for callers that build records directly.
const (
	MaxFullNameLen    = 50
	MaxEmailLen       = 50
	MaxPhoneLen       = 20
	MaxAddressLen     = 60
	MaxInstitutionLen = 50
	MaxDegreeLen      = 50
	MaxDetailsLen     = 120
	MaxCompanyLen     = 50
	MaxJobTitleLen    = 50
	MaxProfileLen     = 400
	MaxSkillLen       = 30
	MaxRawNotesLen    = 300
)

// Sequence caps. Adds past a cap are no-ops, never errors.
const (
	MaxEducationEntries  = 3
	MaxExperienceEntries = 3
	MaxSkills            = 20
)

// PersonalDetails holds the contact block rendered at the top of a CV.
// All fields are free text; email is deliberately not format-validated.
type PersonalDetails struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// EducationEntry represents one education item. Dates are free text, not
// parsed. ID is a stable identifier assigned at creation so per-entry
// state (busy flags, errors) survives sibling removal.
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Details     string `json:"details"`
}

// ExperienceEntry represents one work experience item. RawNotes is the
// transient prompt input for the bullet rewrite; it is carried on the
// session copy of the entry but never rendered.
type ExperienceEntry struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	JobTitle         string   `json:"job_title"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
	RawNotes         string   `json:"raw_notes,omitempty"`
}

// ResumeRecord aggregates everything a candidate has entered. It is the
// single mutable root of a wizard session. All mutation helpers return a
// new record (copy-on-write); callers never observe in-place aliasing.
type ResumeRecord struct {
	PersonalDetails PersonalDetails   `json:"personal_details"`
	Profile         string            `json:"profile"`
	Education       []EducationEntry  `json:"education"`
	Experience      []ExperienceEntry `json:"experience"`
	Skills          []string          `json:"skills"`
}

// StarterRecord returns the placeholder record every new session begins
// with, so the preview is never empty.
func StarterRecord() ResumeRecord {
	return ResumeRecord{
		PersonalDetails: PersonalDetails{
			FullName:    "Your Name",
			Email:       "your.email@example.com",
			PhoneNumber: "01234 567890",
			Address:     "Your City, Your County",
		},
		Profile: "A highly motivated and enthusiastic student seeking a part-time role. " +
			"Eager to apply my strong communication and teamwork skills in a dynamic environment. " +
			"Passionate about learning new things and contributing to a team.",
		Education: []EducationEntry{
			{
				ID:          uuid.New().String(),
				Institution: "University of Example",
				Degree:      "BSc Computer Science",
				StartDate:   "Sep 2021",
				EndDate:     "Present",
				Details:     "Relevant modules: Data Structures, Algorithms, Web Development.",
			},
		},
		Experience: []ExperienceEntry{
			{
				ID:        uuid.New().String(),
				Company:   "Example Retail Ltd.",
				JobTitle:  "Sales Assistant",
				StartDate: "Jun 2022",
				EndDate:   "Aug 2022",
				Responsibilities: []string{
					"Assisted customers with inquiries and purchases.",
					"Operated the till and handled cash transactions.",
					"Maintained store cleanliness and stock levels.",
				},
			},
		},
		Skills: []string{"JavaScript", "React", "Tailwind CSS", "Teamwork", "Communication"},
	}
}

// Clone returns a deep copy of the record. Mutating the copy never
// affects the original.
func (r ResumeRecord) Clone() ResumeRecord {
	out := r
	out.Education = make([]EducationEntry, len(r.Education))
	copy(out.Education, r.Education)
	out.Experience = make([]ExperienceEntry, len(r.Experience))
	for i, exp := range r.Experience {
		resp := make([]string, len(exp.Responsibilities))
		copy(resp, exp.Responsibilities)
		exp.Responsibilities = resp
		out.Experience[i] = exp
	}
	out.Skills = make([]string, len(r.Skills))
	copy(out.Skills, r.Skills)
	return out
}

// WithPersonalDetails returns a copy of the record with the contact
// block replaced.
func (r ResumeRecord) WithPersonalDetails(pd PersonalDetails) ResumeRecord {
	out := r.Clone()
	out.PersonalDetails = pd
	return out
}

// WithProfile returns a copy of the record with the profile summary
// replaced wholesale.
func (r ResumeRecord) WithProfile(profile string) ResumeRecord {
	out := r.Clone()
	out.Profile = profile
	return out
}

// AddEducation returns a copy with a blank education entry appended. At
// the cap the record is returned unchanged.
func (r ResumeRecord) AddEducation() ResumeRecord {
	if len(r.Education) >= MaxEducationEntries {
		return r.Clone()
	}
	out := r.Clone()
	out.Education = append(out.Education, EducationEntry{ID: uuid.New().String()})
	return out
}

// UpdateEducation returns a copy with the entry matching id replaced.
// The entry keeps its position and ID. Unknown IDs leave the record
// unchanged and report false.
func (r ResumeRecord) UpdateEducation(id string, entry EducationEntry) (ResumeRecord, bool) {
	out := r.Clone()
	for i := range out.Education {
		if out.Education[i].ID == id {
			entry.ID = id
			out.Education[i] = entry
			return out, true
		}
	}
	return out, false
}

// RemoveEducation returns a copy with the entry matching id filtered
// out. Relative order of the remaining entries is preserved.
func (r ResumeRecord) RemoveEducation(id string) ResumeRecord {
	out := r.Clone()
	kept := out.Education[:0]
	for _, e := range out.Education {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	out.Education = kept
	return out
}

// AddExperience returns a copy with a blank experience entry appended,
// or the record unchanged at the cap.
func (r ResumeRecord) AddExperience() ResumeRecord {
	if len(r.Experience) >= MaxExperienceEntries {
		return r.Clone()
	}
	out := r.Clone()
	out.Experience = append(out.Experience, ExperienceEntry{
		ID:               uuid.New().String(),
		Responsibilities: []string{},
	})
	return out
}

// UpdateExperience returns a copy with the entry matching id replaced,
// keeping position and ID. Unknown IDs report false.
func (r ResumeRecord) UpdateExperience(id string, entry ExperienceEntry) (ResumeRecord, bool) {
	out := r.Clone()
	for i := range out.Experience {
		if out.Experience[i].ID == id {
			entry.ID = id
			out.Experience[i] = entry
			return out, true
		}
	}
	return out, false
}

// RemoveExperience returns a copy with the entry matching id filtered
// out, preserving the order of the rest.
func (r ResumeRecord) RemoveExperience(id string) ResumeRecord {
	out := r.Clone()
	kept := out.Experience[:0]
	for _, e := range out.Experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	out.Experience = kept
	return out
}

// ExperienceByID returns the experience entry matching id, if any.
func (r ResumeRecord) ExperienceByID(id string) (ExperienceEntry, bool) {
	for _, e := range r.Experience {
		if e.ID == id {
			return e, true
		}
	}
	return ExperienceEntry{}, false
}

// WithResponsibilities returns a copy with the responsibilities of the
// entry matching id replaced wholesale. Unknown IDs report false.
func (r ResumeRecord) WithResponsibilities(id string, bullets []string) (ResumeRecord, bool) {
	out := r.Clone()
	for i := range out.Experience {
		if out.Experience[i].ID == id {
			replaced := make([]string, len(bullets))
			copy(replaced, bullets)
			out.Experience[i].Responsibilities = replaced
			return out, true
		}
	}
	return out, false
}

// HasSkill reports whether the record already holds skill under
// case-insensitive comparison.
func (r ResumeRecord) HasSkill(skill string) bool {
	lower := strings.ToLower(skill)
	for _, s := range r.Skills {
		if strings.ToLower(s) == lower {
			return true
		}
	}
	return false
}

// AddSkill returns a copy with the trimmed skill appended. Adds past the
// cap, empty input, and case-insensitive duplicates are no-ops.
func (r ResumeRecord) AddSkill(skill string) ResumeRecord {
	skill = strings.TrimSpace(skill)
	if skill == "" || len(r.Skills) >= MaxSkills || r.HasSkill(skill) {
		return r.Clone()
	}
	out := r.Clone()
	out.Skills = append(out.Skills, skill)
	return out
}

// RemoveSkill returns a copy with the exact skill value filtered out,
// preserving the order of the rest.
func (r ResumeRecord) RemoveSkill(skill string) ResumeRecord {
	out := r.Clone()
	kept := out.Skills[:0]
	for _, s := range out.Skills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	out.Skills = kept
	return out
}

// MergeSkills returns a copy with the suggested skills appended after
// existing ones. Case-insensitive duplicates are silently dropped and
// the merged sequence is truncated to the skill cap.
func (r ResumeRecord) MergeSkills(suggested []string) ResumeRecord {
	out := r.Clone()
	for _, s := range suggested {
		s = strings.TrimSpace(s)
		if s == "" || out.HasSkill(s) {
			continue
		}
		out.Skills = append(out.Skills, s)
	}
	if len(out.Skills) > MaxSkills {
		out.Skills = out.Skills[:MaxSkills]
	}
	return out
}
