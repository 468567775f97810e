// Package models defines the client-side data model: accounts, the career
// profile used as generation input, and generated CV documents.
package models

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrEntryNotFound = errors.New("list entry not found")
	ErrUnknownField  = errors.New("unknown profile field")
)

// PersonalInfo holds contact details. Name, Email and Phone are expected;
// the three URLs are optional.
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// WorkExperience is one position. ID is assigned locally and is used for
// list editing; it is never sent by the AI extractor.
type WorkExperience struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

// Education is one degree, identified the same way as WorkExperience.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate"`
}

// Profile is the user's career data. Lists keep insertion order. A profile
// is always saved as a whole; there is no field-level merge.
type Profile struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"`
}

// NewProfile returns the all-blank profile shown before anything was saved.
func NewProfile() Profile {
	return Profile{
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Skills:         []string{},
	}
}

// IsEmpty reports whether nothing has been filled in yet.
func (p Profile) IsEmpty() bool {
	return p.PersonalInfo == (PersonalInfo{}) && p.Summary == "" &&
		len(p.WorkExperience) == 0 && len(p.Education) == 0 && len(p.Skills) == 0
}

// IsConfigured reports whether the profile has the name and summary a CV
// needs before one can be generated.
func (p Profile) IsConfigured() bool {
	return strings.TrimSpace(p.PersonalInfo.Name) != "" && strings.TrimSpace(p.Summary) != ""
}

// Clone returns a deep copy so callers can edit without touching the
// original's slices.
func (p Profile) Clone() Profile {
	c := p
	c.WorkExperience = make([]WorkExperience, len(p.WorkExperience))
	for i, w := range p.WorkExperience {
		w.Responsibilities = slices.Clone(w.Responsibilities)
		c.WorkExperience[i] = w
	}
	c.Education = slices.Clone(p.Education)
	if c.Education == nil {
		c.Education = []Education{}
	}
	c.Skills = slices.Clone(p.Skills)
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return c
}

// AssignIDs gives every list entry without an id a fresh one from newID.
// Existing ids are left alone.
func (p *Profile) AssignIDs(newID func() string) {
	for i := range p.WorkExperience {
		if p.WorkExperience[i].ID == "" {
			p.WorkExperience[i].ID = newID()
		}
	}
	for i := range p.Education {
		if p.Education[i].ID == "" {
			p.Education[i].ID = newID()
		}
	}
}

// AddExperience appends a blank position with the given id.
func (p *Profile) AddExperience(id string) {
	p.WorkExperience = append(p.WorkExperience, WorkExperience{ID: id, Responsibilities: []string{}})
}

// RemoveExperience deletes the position with id, keeping the order of the rest.
func (p *Profile) RemoveExperience(id string) error {
	i := p.experienceIndex(id)
	if i < 0 {
		return ErrEntryNotFound
	}
	p.WorkExperience = slices.Delete(p.WorkExperience, i, i+1)
	return nil
}

// MoveExperience moves the position with id to index to (clamped).
func (p *Profile) MoveExperience(id string, to int) error {
	i := p.experienceIndex(id)
	if i < 0 {
		return ErrEntryNotFound
	}
	p.WorkExperience = move(p.WorkExperience, i, to)
	return nil
}

// AddEducation appends a blank education entry with the given id.
func (p *Profile) AddEducation(id string) {
	p.Education = append(p.Education, Education{ID: id})
}

// RemoveEducation deletes the education entry with id.
func (p *Profile) RemoveEducation(id string) error {
	i := p.educationIndex(id)
	if i < 0 {
		return ErrEntryNotFound
	}
	p.Education = slices.Delete(p.Education, i, i+1)
	return nil
}

// MoveEducation moves the education entry with id to index to (clamped).
func (p *Profile) MoveEducation(id string, to int) error {
	i := p.educationIndex(id)
	if i < 0 {
		return ErrEntryNotFound
	}
	p.Education = move(p.Education, i, to)
	return nil
}

func (p *Profile) experienceIndex(id string) int {
	return slices.IndexFunc(p.WorkExperience, func(w WorkExperience) bool { return w.ID == id })
}

func (p *Profile) educationIndex(id string) int {
	return slices.IndexFunc(p.Education, func(e Education) bool { return e.ID == id })
}

func move[T any](s []T, from, to int) []T {
	if to < 0 {
		to = 0
	}
	if to > len(s)-1 {
		to = len(s) - 1
	}
	item := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, item)
}
