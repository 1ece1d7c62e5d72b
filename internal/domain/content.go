package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// SkillCategory groups skills on the landing page
type SkillCategory string

const (
	SkillLanguages  SkillCategory = "languages"
	SkillFrameworks SkillCategory = "frameworks"
	SkillTools      SkillCategory = "tools"
)

// SkillCategories lists the categories in display order
var SkillCategories = []SkillCategory{SkillLanguages, SkillFrameworks, SkillTools}

// Valid reports whether c is a known category
func (c SkillCategory) Valid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the section heading for the category
func (c SkillCategory) Label() string {
	switch c {
	case SkillLanguages:
		return "Languages"
	case SkillFrameworks:
		return "Frameworks & Databases"
	case SkillTools:
		return "Tools"
	default:
		return string(c)
	}
}

// Link is a labelled outbound link with an optional icon
type Link struct {
	Label string `json:"label" yaml:"label" validate:"required"`
	URL   string `json:"url" yaml:"url" validate:"required"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`
}

// SiteProfile holds the owner's identity shown in the header, intro and footer
type SiteProfile struct {
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url" validate:"omitempty,url"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	Headline  string `json:"headline" yaml:"headline" validate:"required"`
	Biography string `json:"biography" yaml:"biography"`
	Avatar    string `json:"avatar,omitempty" yaml:"avatar"`
	Resume    *Link  `json:"resume,omitempty" yaml:"resume" validate:"omitempty"`
	Social    []Link `json:"social" yaml:"social" validate:"dive"`
}

// Project is one entry of the project gallery
type Project struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Thumbnail   string   `json:"thumbnail,omitempty" yaml:"thumbnail"`
	LiveURL     string   `json:"live_url,omitempty" yaml:"live_url" validate:"omitempty,url"`
	GitHubURL   string   `json:"github_url,omitempty" yaml:"github_url" validate:"omitempty,url"`
	BuiltWith   []string `json:"built_with" yaml:"built_with"`
}

// Skill is a single technology shown in the skills section
type Skill struct {
	Category SkillCategory `json:"category" yaml:"-"`
	Title    string        `json:"title" yaml:"title" validate:"required"`
	Icon     string        `json:"icon,omitempty" yaml:"icon"`
}

// Experience is a past or current position
type Experience struct {
	Position    string `json:"position" yaml:"position" validate:"required"`
	Company     string `json:"company" yaml:"company" validate:"required"`
	Location    string `json:"location,omitempty" yaml:"location"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	EndDate     string `json:"end_date" yaml:"end_date"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Recommendation is a quote from a colleague. Description may carry a small
// amount of HTML (line breaks) and is sanitized before rendering.
type Recommendation struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Headline    string `json:"headline" yaml:"headline"`
	Avatar      string `json:"avatar,omitempty" yaml:"avatar"`
	Description string `json:"description" yaml:"description" validate:"required"`
}

// SiteContent is everything the landing page renders. It is built once from the
// content file and never mutated afterwards.
type SiteContent struct {
	Profile         SiteProfile      `json:"profile"`
	Projects        []Project        `json:"projects" validate:"dive"`
	Skills          []Skill          `json:"skills" validate:"dive"`
	Experience      []Experience     `json:"experience" validate:"dive"`
	Recommendations []Recommendation `json:"recommendations" validate:"dive"`
}

// SkillsIn returns the skills of one category in content order
func (c *SiteContent) SkillsIn(category SkillCategory) []Skill {
	var out []Skill
	for _, s := range c.Skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// ContentSource hands out the content currently in effect
type ContentSource interface {
	Current() *SiteContent
}

type ContentUsecase interface {
	GetProfile(ctx context.Context) SiteProfile
	ListProjects(ctx context.Context) []Project
	GetProject(ctx context.Context, index int) (*Project, error)
	ListSkills(ctx context.Context, category SkillCategory) ([]Skill, error)
	Content(ctx context.Context) *SiteContent
}
