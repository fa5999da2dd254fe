package types

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateID names one of the built-in visual layouts.
type TemplateID string

// Built-in layouts
const (
	TemplateModern  TemplateID = "modern"
	TemplateSidebar TemplateID = "sidebar"
	TemplateClassic TemplateID = "classic"
)

// DefaultTemplate is used when no layout is selected.
const DefaultTemplate = TemplateModern

// TemplateInfo describes a layout for pickers.
type TemplateInfo struct {
	ID   TemplateID `json:"id"`
	Name string     `json:"name"`
}

// Templates lists the layouts in display order.
func Templates() []TemplateInfo {
	return []TemplateInfo{
		{ID: TemplateModern, Name: "Modern"},
		{ID: TemplateSidebar, Name: "Sidebar"},
		{ID: TemplateClassic, Name: "Timeline"},
	}
}

// ParseTemplateID parses a user-supplied layout name.
func ParseTemplateID(s string) (TemplateID, error) {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case TemplateModern, TemplateSidebar, TemplateClassic:
		return id, nil
	case "":
		return DefaultTemplate, nil
	default:
		return "", fmt.Errorf("unknown template %q (expected modern, sidebar or classic)", s)
	}
}

// ThemeColor is a named entry of the colour palette.
type ThemeColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultThemeColor is the accent colour of a new document (Indigo).
const DefaultThemeColor = "#4f46e5"

// ThemeColors returns the preset palette. Any hex colour is accepted as well.
func ThemeColors() []ThemeColor {
	return []ThemeColor{
		{Name: "Indigo", Value: "#4f46e5"},
		{Name: "Slate", Value: "#475569"},
		{Name: "Blue", Value: "#2563eb"},
		{Name: "Emerald", Value: "#059669"},
		{Name: "Rose", Value: "#e11d48"},
		{Name: "Violet", Value: "#7c3aed"},
		{Name: "Orange", Value: "#ea580c"},
	}
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb colour.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
