// Package types provides type definitions for the CV document edited by cv-builder.
package types

import (
	"fmt"

	"github.com/brunoga/deep"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Profile holds the personal details shown in every template header.
type Profile struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"` // Shown as the job title / headline
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary"`
	// Image is a data URL or http(s) URL. Nil means no photo was ever set.
	Image *string `json:"image,omitempty"`
}

// Experience is a single position in the work history.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is a single degree or training entry.
type Education struct {
	ID        string  `json:"id" validate:"required"`
	School    string  `json:"school"`
	Degree    string  `json:"degree"`
	Field     string  `json:"field"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Score     *string `json:"score,omitempty"` // GPA, grade or honours
}

// Skill is a named skill with a 1-5 level.
type Skill struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"min=1,max=5"`
}

// Language is a spoken language and proficiency label.
type Language struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// SectionType selects how a custom section renders its content.
type SectionType string

// Custom section content formats
const (
	SectionParagraph SectionType = "paragraph"
	SectionList      SectionType = "list"
)

// CustomSection is a user-defined section such as Projects or Awards.
type CustomSection struct {
	ID          string      `json:"id" validate:"required"`
	Title       string      `json:"title"`
	Type        SectionType `json:"type" validate:"oneof=paragraph list"`
	Description string      `json:"description"`
	Items       []string    `json:"items"`
}

// Document is the whole CV. It is the snapshot type kept in edit history.
type Document struct {
	Profile    Profile         `json:"profile"`
	Experience []Experience    `json:"experience" validate:"dive"`
	Education  []Education     `json:"education" validate:"dive"`
	Skills     []Skill         `json:"skills" validate:"dive"`
	Languages  []Language      `json:"languages" validate:"dive"`
	Custom     []CustomSection `json:"custom" validate:"dive"`
	ThemeColor string          `json:"themeColor" validate:"required,themecolor"`
}

// DefaultSkillLevel is the level assigned to skills added by name.
const DefaultSkillLevel = 3

var validate = NewValidator()

// NewValidator returns a validator with the document's custom tags
// registered. themecolor accepts the #rgb and #rrggbb forms of IsHexColor.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("themecolor", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	})
	return v
}

// Validate checks field-level constraints on the document.
func (d *Document) Validate() error {
	return validate.Struct(d)
}

// Clone returns a copy of d that shares no memory with it.
func (d Document) Clone() Document {
	out, err := deep.Copy(d)
	if err != nil {
		// Document contains only strings, ints, bools, slices and pointers.
		panic(fmt.Sprintf("types: deep copy of document failed: %v", err))
	}
	return out
}

// Normalize replaces nil slices with empty ones so the JSON form always
// carries arrays.
func (d *Document) Normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Languages == nil {
		d.Languages = []Language{}
	}
	if d.Custom == nil {
		d.Custom = []CustomSection{}
	}
	for i := range d.Custom {
		if d.Custom[i].Items == nil {
			d.Custom[i].Items = []string{}
		}
	}
	if d.ThemeColor == "" {
		d.ThemeColor = DefaultThemeColor
	}
}

// NewID returns a fresh identifier for a document entry.
func NewID() string {
	return uuid.NewString()
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Empty returns a blank document with the default theme colour.
func Empty() Document {
	d := Document{}
	d.Normalize()
	return d
}
