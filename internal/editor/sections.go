package editor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Section names a list-valued part of the document.
type Section string

// Document sections that hold entries with ids
const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionLanguages  Section = "languages"
	SectionCustom     Section = "custom"
)

// ParseSection parses a section name from a URL or flag.
func ParseSection(s string) (Section, error) {
	switch sec := Section(strings.ToLower(s)); sec {
	case SectionExperience, SectionEducation, SectionSkills, SectionLanguages, SectionCustom:
		return sec, nil
	default:
		return "", fmt.Errorf("unknown section %q", s)
	}
}

// The package-level functions below build one Edit each. Session methods of
// the same name apply them directly; the HTTP layer applies them with
// Session.Apply to get the resulting view.

// SetProfile replaces the profile record.
func SetProfile(p types.Profile) Edit {
	return func(d *types.Document) error {
		d.Profile = p
		return nil
	}
}

// SetProfileImage sets the profile photo to a data URL or http(s) URL.
func SetProfileImage(url string) Edit {
	url = strings.TrimSpace(url)
	return func(d *types.Document) error {
		if url == "" {
			return ErrBlankValue
		}
		d.Profile.Image = types.StringPtr(url)
		return nil
	}
}

// RemoveProfileImage clears the profile photo.
func RemoveProfileImage() Edit {
	return func(d *types.Document) error {
		d.Profile.Image = nil
		return nil
	}
}

func setList[T any](field func(*types.Document) *[]T, items []T) Edit {
	return func(d *types.Document) error {
		*field(d) = items
		return nil
	}
}

// SetExperience replaces the whole experience list.
func SetExperience(items []types.Experience) Edit {
	return setList(func(d *types.Document) *[]types.Experience { return &d.Experience }, items)
}

// SetEducation replaces the whole education list.
func SetEducation(items []types.Education) Edit {
	return setList(func(d *types.Document) *[]types.Education { return &d.Education }, items)
}

// SetSkills replaces the whole skill list.
func SetSkills(items []types.Skill) Edit {
	return setList(func(d *types.Document) *[]types.Skill { return &d.Skills }, items)
}

// SetLanguages replaces the whole language list.
func SetLanguages(items []types.Language) Edit {
	return setList(func(d *types.Document) *[]types.Language { return &d.Languages }, items)
}

// SetCustom replaces the whole list of custom sections.
func SetCustom(items []types.CustomSection) Edit {
	return setList(func(d *types.Document) *[]types.CustomSection { return &d.Custom }, items)
}

// SetThemeColor sets the accent colour.
func SetThemeColor(color string) Edit {
	color = strings.TrimSpace(color)
	return func(d *types.Document) error {
		if !types.IsHexColor(color) {
			return &ValidationError{Message: fmt.Sprintf("theme colour %q is not a hex colour", color)}
		}
		d.ThemeColor = color
		return nil
	}
}

// AddEntry appends a blank entry to a section and returns the edit with
// the new entry's id. Skills need a name and are added with AddSkill.
func AddEntry(section Section) (Edit, string) {
	id := types.NewID()
	switch section {
	case SectionExperience:
		return func(d *types.Document) error {
			d.Experience = append(d.Experience, types.Experience{ID: id})
			return nil
		}, id
	case SectionEducation:
		return func(d *types.Document) error {
			d.Education = append(d.Education, types.Education{ID: id})
			return nil
		}, id
	case SectionLanguages:
		return func(d *types.Document) error {
			d.Languages = append(d.Languages, types.Language{ID: id})
			return nil
		}, id
	case SectionCustom:
		return func(d *types.Document) error {
			d.Custom = append(d.Custom, types.CustomSection{
				ID:    id,
				Type:  types.SectionParagraph,
				Items: []string{},
			})
			return nil
		}, id
	case SectionSkills:
		return failed(ErrBlankValue), ""
	default:
		return failed(fmt.Errorf("unknown section %q", section)), ""
	}
}

// AddSkill appends a skill with the default level.
func AddSkill(name string) (Edit, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return failed(ErrBlankValue), ""
	}
	id := types.NewID()
	return func(d *types.Document) error {
		d.Skills = append(d.Skills, types.Skill{ID: id, Name: name, Level: types.DefaultSkillLevel})
		return nil
	}, id
}

func failed(err error) Edit {
	return func(*types.Document) error { return err }
}

// RemoveEntry deletes the entry with the given id from a section.
func RemoveEntry(section Section, id string) Edit {
	return func(d *types.Document) error {
		var n, before int
		switch section {
		case SectionExperience:
			before = len(d.Experience)
			d.Experience = slices.DeleteFunc(d.Experience, func(e types.Experience) bool { return e.ID == id })
			n = len(d.Experience)
		case SectionEducation:
			before = len(d.Education)
			d.Education = slices.DeleteFunc(d.Education, func(e types.Education) bool { return e.ID == id })
			n = len(d.Education)
		case SectionSkills:
			before = len(d.Skills)
			d.Skills = slices.DeleteFunc(d.Skills, func(e types.Skill) bool { return e.ID == id })
			n = len(d.Skills)
		case SectionLanguages:
			before = len(d.Languages)
			d.Languages = slices.DeleteFunc(d.Languages, func(e types.Language) bool { return e.ID == id })
			n = len(d.Languages)
		case SectionCustom:
			before = len(d.Custom)
			d.Custom = slices.DeleteFunc(d.Custom, func(e types.CustomSection) bool { return e.ID == id })
			n = len(d.Custom)
		default:
			return fmt.Errorf("unknown section %q", section)
		}
		if n == before {
			return &NotFoundError{Section: section, ID: id}
		}
		return nil
	}
}

// UpdateExperience edits one experience entry in place.
func UpdateExperience(id string, fn func(*types.Experience)) Edit {
	return func(d *types.Document) error {
		i := slices.IndexFunc(d.Experience, func(e types.Experience) bool { return e.ID == id })
		if i < 0 {
			return &NotFoundError{Section: SectionExperience, ID: id}
		}
		fn(&d.Experience[i])
		return nil
	}
}

// AddCustomItem appends a bullet to a custom section.
func AddCustomItem(sectionID, value string) Edit {
	value = strings.TrimSpace(value)
	return func(d *types.Document) error {
		if value == "" {
			return ErrBlankValue
		}
		i := slices.IndexFunc(d.Custom, func(c types.CustomSection) bool { return c.ID == sectionID })
		if i < 0 {
			return &NotFoundError{Section: SectionCustom, ID: sectionID}
		}
		d.Custom[i].Items = append(d.Custom[i].Items, value)
		return nil
	}
}

// RemoveCustomItem deletes the bullet at index from a custom section.
func RemoveCustomItem(sectionID string, index int) Edit {
	return func(d *types.Document) error {
		i := slices.IndexFunc(d.Custom, func(c types.CustomSection) bool { return c.ID == sectionID })
		if i < 0 {
			return &NotFoundError{Section: SectionCustom, ID: sectionID}
		}
		items := d.Custom[i].Items
		if index < 0 || index >= len(items) {
			return &NotFoundError{Section: SectionCustom, ID: sectionID + "/items/" + strconv.Itoa(index)}
		}
		d.Custom[i].Items = slices.Delete(items, index, index+1)
		return nil
	}
}

func (s *Session) SetProfile(p types.Profile) error {
	return s.Update(SetProfile(p))
}

func (s *Session) SetProfileImage(url string) error {
	return s.Update(SetProfileImage(url))
}

func (s *Session) RemoveProfileImage() error {
	return s.Update(RemoveProfileImage())
}

func (s *Session) SetExperience(items []types.Experience) error {
	return s.Update(SetExperience(items))
}

func (s *Session) SetEducation(items []types.Education) error {
	return s.Update(SetEducation(items))
}

func (s *Session) SetSkills(items []types.Skill) error {
	return s.Update(SetSkills(items))
}

func (s *Session) SetLanguages(items []types.Language) error {
	return s.Update(SetLanguages(items))
}

func (s *Session) SetCustom(items []types.CustomSection) error {
	return s.Update(SetCustom(items))
}

func (s *Session) SetThemeColor(color string) error {
	return s.Update(SetThemeColor(color))
}

func (s *Session) AddExperience() (string, error) {
	return s.add(AddEntry(SectionExperience))
}

func (s *Session) AddEducation() (string, error) {
	return s.add(AddEntry(SectionEducation))
}

func (s *Session) AddLanguage() (string, error) {
	return s.add(AddEntry(SectionLanguages))
}

func (s *Session) AddCustomSection() (string, error) {
	return s.add(AddEntry(SectionCustom))
}

func (s *Session) AddSkill(name string) (string, error) {
	return s.add(AddSkill(name))
}

// Add appends a blank entry to a section and returns its id.
func (s *Session) Add(section Section) (string, error) {
	return s.add(AddEntry(section))
}

func (s *Session) add(edit Edit, id string) (string, error) {
	if err := s.Update(edit); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Session) Remove(section Section, id string) error {
	return s.Update(RemoveEntry(section, id))
}

func (s *Session) UpdateExperience(id string, fn func(*types.Experience)) error {
	return s.Update(UpdateExperience(id, fn))
}

func (s *Session) AddCustomItem(sectionID, value string) error {
	return s.Update(AddCustomItem(sectionID, value))
}

func (s *Session) RemoveCustomItem(sectionID string, index int) error {
	return s.Update(RemoveCustomItem(sectionID, index))
}
