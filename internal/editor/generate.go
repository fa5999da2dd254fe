package editor

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// ErrEmptyResult is returned when the generator answered with no text.
// The document is left unchanged.
var ErrEmptyResult = errors.New("generator returned no text")

// TextGenerator drafts or rewrites text fields. Implementations make a
// single remote request per call.
type TextGenerator interface {
	// ProfessionalSummary drafts a short CV summary for a job title and key skills.
	ProfessionalSummary(ctx context.Context, jobTitle, keySkills string) (string, error)
	// EnhanceDescription rewrites job description bullets for a role.
	EnhanceDescription(ctx context.Context, text, role string) (string, error)
}

// GenerateSummary drafts the profile summary and stores it as a new edit.
// On any failure the existing summary is kept.
func (s *Session) GenerateSummary(ctx context.Context, gen TextGenerator) (string, Result, error) {
	if !s.generating.CompareAndSwap(false, true) {
		return "", Result{}, ErrGenerationInProgress
	}
	defer s.generating.Store(false)

	doc := s.Document()
	jobTitle, keySkills := summaryInputs(doc)

	text, err := gen.ProfessionalSummary(ctx, jobTitle, keySkills)
	if err != nil {
		s.logger.Warn("summary generation failed", zap.Error(err))
		return "", Result{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", Result{}, ErrEmptyResult
	}

	res, err := s.Apply(func(d *types.Document) error {
		d.Profile.Summary = text
		return nil
	})
	if err != nil {
		return "", Result{}, err
	}
	return text, res, nil
}

// EnhanceExperience rewrites the description of one experience entry and
// stores it as a new edit. On any failure the existing description is kept.
func (s *Session) EnhanceExperience(ctx context.Context, gen TextGenerator, id string) (string, Result, error) {
	doc := s.Document()
	i := slices.IndexFunc(doc.Experience, func(e types.Experience) bool { return e.ID == id })
	if i < 0 {
		return "", Result{}, &NotFoundError{Section: SectionExperience, ID: id}
	}
	item := doc.Experience[i]
	if strings.TrimSpace(item.Description) == "" {
		return "", Result{}, ErrNothingToEnhance
	}

	if !s.generating.CompareAndSwap(false, true) {
		return "", Result{}, ErrGenerationInProgress
	}
	defer s.generating.Store(false)

	role := strings.TrimSpace(item.Position)
	if role == "" {
		role = "Professional"
	}

	text, err := gen.EnhanceDescription(ctx, item.Description, role)
	if err != nil {
		s.logger.Warn("experience enhancement failed", zap.String("experience", id), zap.Error(err))
		return "", Result{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", Result{}, ErrEmptyResult
	}

	// The entry may have been removed while the request was in flight.
	res, err := s.Apply(UpdateExperience(id, func(e *types.Experience) {
		e.Description = text
	}))
	if err != nil {
		return "", Result{}, err
	}
	return text, res, nil
}

// summaryInputs derives the prompt inputs from the document: the headline
// as job title and the skill names as highlights.
func summaryInputs(doc types.Document) (jobTitle, keySkills string) {
	jobTitle = strings.TrimSpace(doc.Profile.Location)
	if jobTitle == "" {
		jobTitle = "Professional"
	}

	names := make([]string, 0, len(doc.Skills))
	for _, skill := range doc.Skills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			names = append(names, name)
		}
	}
	switch {
	case len(names) > 0:
		keySkills = strings.Join(names, ", ")
	case strings.TrimSpace(doc.Profile.FullName) != "":
		keySkills = strings.TrimSpace(doc.Profile.FullName)
	default:
		keySkills = "Candidate"
	}
	return jobTitle, keySkills
}
