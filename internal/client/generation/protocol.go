// Package generation builds the three prompts the application sends to the
// model (profile extraction, CV generation and CV revision) and interprets
// the answers.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/atscv/internal/client/ai"
	"github.com/dmitrijs2005/atscv/internal/client/models"
)

type Protocol struct {
	gw *ai.Gateway
}

func NewProtocol(gw *ai.Gateway) *Protocol {
	return &Protocol{gw: gw}
}

// ExtractProfile turns free CV text into a Profile. List entries come back
// in source order and without ids.
func (p *Protocol) ExtractProfile(ctx context.Context, cvText string) (models.Profile, error) {
	if strings.TrimSpace(cvText) == "" {
		return models.Profile{}, &OpError{Op: OpExtractProfile, Err: ErrEmptyInput}
	}

	prompt, err := render(extractProfileTemplate, extractProfileData{CVText: cvText})
	if err != nil {
		return models.Profile{}, &OpError{Op: OpExtractProfile, Err: err}
	}

	profile, err := ai.JSON[models.Profile](ctx, p.gw, prompt, ProfileSchema)
	if err != nil {
		return models.Profile{}, &OpError{Op: OpExtractProfile, Err: err}
	}
	return normalize(profile), nil
}

// GenerateDocument returns the model's markdown CV for profile tailored to
// jobDescription. The body is returned untouched.
func (p *Protocol) GenerateDocument(ctx context.Context, profile models.Profile, jobDescription string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", &OpError{Op: OpGenerateCV, Err: ErrEmptyInput}
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", &OpError{Op: OpGenerateCV, Err: fmt.Errorf("encode profile: %w", err)}
	}

	prompt, err := render(generateCVTemplate, generateCVData{
		ProfileJSON:    string(profileJSON),
		JobDescription: jobDescription,
	})
	if err != nil {
		return "", &OpError{Op: OpGenerateCV, Err: err}
	}

	body, err := p.gw.Text(ctx, prompt)
	if err != nil {
		return "", &OpError{Op: OpGenerateCV, Err: err}
	}
	return body, nil
}

// ReviseDocument asks for originalBody rewritten per changeRequest, keeping
// its formatting.
func (p *Protocol) ReviseDocument(ctx context.Context, originalBody, changeRequest string, profile models.Profile, jobDescription string) (string, error) {
	if strings.TrimSpace(changeRequest) == "" || strings.TrimSpace(originalBody) == "" {
		return "", &OpError{Op: OpReviseCV, Err: ErrEmptyInput}
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", &OpError{Op: OpReviseCV, Err: fmt.Errorf("encode profile: %w", err)}
	}

	prompt, err := render(reviseCVTemplate, reviseCVData{
		ChangeRequest:  changeRequest,
		OriginalBody:   originalBody,
		ProfileJSON:    string(profileJSON),
		JobDescription: jobDescription,
	})
	if err != nil {
		return "", &OpError{Op: OpReviseCV, Err: err}
	}

	body, err := p.gw.Text(ctx, prompt)
	if err != nil {
		return "", &OpError{Op: OpReviseCV, Err: err}
	}
	return body, nil
}

// normalize replaces nil lists with empty ones so the profile encodes the
// same way as one built by hand.
func normalize(p models.Profile) models.Profile {
	if p.WorkExperience == nil {
		p.WorkExperience = []models.WorkExperience{}
	}
	for i := range p.WorkExperience {
		if p.WorkExperience[i].Responsibilities == nil {
			p.WorkExperience[i].Responsibilities = []string{}
		}
	}
	if p.Education == nil {
		p.Education = []models.Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p
}
