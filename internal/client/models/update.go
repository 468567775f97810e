package models

import (
	"fmt"
	"strings"
)

// PersonalField names one PersonalInfo field.
type PersonalField string

const (
	FieldName      PersonalField = "name"
	FieldEmail     PersonalField = "email"
	FieldPhone     PersonalField = "phone"
	FieldLinkedIn  PersonalField = "linkedin"
	FieldGitHub    PersonalField = "github"
	FieldPortfolio PersonalField = "portfolio"
)

// ExperienceField names one scalar WorkExperience field.
type ExperienceField string

const (
	FieldJobTitle  ExperienceField = "title"
	FieldCompany   ExperienceField = "company"
	FieldLocation  ExperienceField = "location"
	FieldStartDate ExperienceField = "start"
	FieldEndDate   ExperienceField = "end"
)

// EducationField names one scalar Education field.
type EducationField string

const (
	FieldDegree         EducationField = "degree"
	FieldInstitution    EducationField = "institution"
	FieldEduLocation    EducationField = "location"
	FieldGraduationDate EducationField = "graduation"
)

// FieldUpdate is a single edit to a Profile. The set of implementations is
// closed: SetPersonal, SetSummary, SetSkills, SetExperience,
// SetResponsibilities and SetEducation.
type FieldUpdate interface {
	apply(p *Profile) error
}

type SetPersonal struct {
	Field PersonalField
	Value string
}

type SetSummary struct {
	Value string
}

type SetSkills struct {
	Skills []string
}

type SetExperience struct {
	ID    string
	Field ExperienceField
	Value string
}

type SetResponsibilities struct {
	ID    string
	Lines []string
}

type SetEducation struct {
	ID    string
	Field EducationField
	Value string
}

// Apply runs u against p. On error p is left unchanged.
func (p *Profile) Apply(u FieldUpdate) error {
	return u.apply(p)
}

func (u SetPersonal) apply(p *Profile) error {
	info := &p.PersonalInfo
	switch u.Field {
	case FieldName:
		info.Name = u.Value
	case FieldEmail:
		info.Email = u.Value
	case FieldPhone:
		info.Phone = u.Value
	case FieldLinkedIn:
		info.LinkedIn = u.Value
	case FieldGitHub:
		info.GitHub = u.Value
	case FieldPortfolio:
		info.Portfolio = u.Value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, u.Field)
	}
	return nil
}

func (u SetSummary) apply(p *Profile) error {
	p.Summary = u.Value
	return nil
}

func (u SetSkills) apply(p *Profile) error {
	skills := make([]string, 0, len(u.Skills))
	for _, s := range u.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	p.Skills = skills
	return nil
}

func (u SetExperience) apply(p *Profile) error {
	i := p.experienceIndex(u.ID)
	if i < 0 {
		return ErrEntryNotFound
	}
	w := &p.WorkExperience[i]
	switch u.Field {
	case FieldJobTitle:
		w.JobTitle = u.Value
	case FieldCompany:
		w.Company = u.Value
	case FieldLocation:
		w.Location = u.Value
	case FieldStartDate:
		w.StartDate = u.Value
	case FieldEndDate:
		w.EndDate = u.Value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, u.Field)
	}
	return nil
}

func (u SetResponsibilities) apply(p *Profile) error {
	i := p.experienceIndex(u.ID)
	if i < 0 {
		return ErrEntryNotFound
	}
	lines := make([]string, len(u.Lines))
	copy(lines, u.Lines)
	p.WorkExperience[i].Responsibilities = lines
	return nil
}

func (u SetEducation) apply(p *Profile) error {
	i := p.educationIndex(u.ID)
	if i < 0 {
		return ErrEntryNotFound
	}
	e := &p.Education[i]
	switch u.Field {
	case FieldDegree:
		e.Degree = u.Value
	case FieldInstitution:
		e.Institution = u.Value
	case FieldEduLocation:
		e.Location = u.Value
	case FieldGraduationDate:
		e.GraduationDate = u.Value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, u.Field)
	}
	return nil
}

// ParseFieldUpdate maps a top-level field name typed in the REPL ("name",
// "summary", "skills", ...) to its update command. Skills are comma
// separated.
func ParseFieldUpdate(field, value string) (FieldUpdate, error) {
	switch f := strings.ToLower(strings.TrimSpace(field)); f {
	case "summary":
		return SetSummary{Value: value}, nil
	case "skills":
		return SetSkills{Skills: strings.Split(value, ",")}, nil
	case string(FieldName), string(FieldEmail), string(FieldPhone),
		string(FieldLinkedIn), string(FieldGitHub), string(FieldPortfolio):
		return SetPersonal{Field: PersonalField(f), Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}
