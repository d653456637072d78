package types

import (
	"github.com/go-playground/validator/v10"
)

// Request DTOs for the session API. Length caps are enforced here, at
// the input boundary, with validator tags; over-cap input is rejected
// rather than truncated after storage.

// UpdatePersonalRequest replaces the personal details slice of a record.
type UpdatePersonalRequest struct {
	FullName    string `json:"full_name" validate:"max=50"`
	Email       string `json:"email" validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
	Address     string `json:"address" validate:"max=60"`
}

// Validate validates the UpdatePersonalRequest using the validator.
func (r *UpdatePersonalRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Details converts the request into a PersonalDetails value.
func (r *UpdatePersonalRequest) Details() PersonalDetails {
	return PersonalDetails{
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
}

// UpdateProfileRequest replaces the profile summary.
type UpdateProfileRequest struct {
	Profile string `json:"profile" validate:"max=400"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateEducationRequest edits the five fields of one education entry.
type UpdateEducationRequest struct {
	Institution string `json:"institution" validate:"max=50"`
	Degree      string `json:"degree" validate:"max=50"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Details     string `json:"details" validate:"max=120"`
}

// Validate validates the UpdateEducationRequest using the validator.
func (r *UpdateEducationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Entry converts the request into an EducationEntry. The caller supplies
// the stable ID.
func (r *UpdateEducationRequest) Entry() EducationEntry {
	return EducationEntry{
		Institution: r.Institution,
		Degree:      r.Degree,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Details:     r.Details,
	}
}

// UpdateExperienceRequest edits one experience entry. RawNotes is the
// transient rewrite prompt input, capped separately from the rendered
// fields. Responsibilities may be edited directly for manual entry.
type UpdateExperienceRequest struct {
	Company          string   `json:"company" validate:"max=50"`
	JobTitle         string   `json:"job_title" validate:"max=50"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
	RawNotes         string   `json:"raw_notes" validate:"max=300"`
}

// Validate validates the UpdateExperienceRequest using the validator.
func (r *UpdateExperienceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Entry converts the request into an ExperienceEntry. The caller
// supplies the stable ID.
func (r *UpdateExperienceRequest) Entry() ExperienceEntry {
	resp := r.Responsibilities
	if resp == nil {
		resp = []string{}
	}
	return ExperienceEntry{
		Company:          r.Company,
		JobTitle:         r.JobTitle,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Responsibilities: resp,
		RawNotes:         r.RawNotes,
	}
}

// AddSkillRequest adds one skill to the record.
type AddSkillRequest struct {
	Skill string `json:"skill" validate:"required,max=30"`
}

// Validate validates the AddSkillRequest using the validator.
func (r *AddSkillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ExportRequest selects the template variant for a PDF export.
type ExportRequest struct {
	Template string `json:"template" validate:"required,oneof=modern creative"`
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
