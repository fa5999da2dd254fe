package types

import "fmt"

// GeneratorAction selects which text field a generation request drafts.
type GeneratorAction string

// Supported generation actions
const (
	ActionSummarize         GeneratorAction = "SUMMARIZE"
	ActionEnhanceExperience GeneratorAction = "ENHANCE_EXPERIENCE"
)

// GenerateRequest is the body of a generation request against a session.
type GenerateRequest struct {
	Action       GeneratorAction `json:"action" validate:"required,oneof=SUMMARIZE ENHANCE_EXPERIENCE"`
	ExperienceID string          `json:"experience_id,omitempty" validate:"required_if=Action ENHANCE_EXPERIENCE"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid generate request: %w", err)
	}
	return nil
}
