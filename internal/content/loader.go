// Package content loads the site content file and keeps the current copy.
package content

import (
	"bytes"
	"os"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// file mirrors the YAML layout. Skills are grouped by category there and
// flattened into domain.Skill values on load.
type file struct {
	Profile  domain.SiteProfile `yaml:"profile"`
	Projects []domain.Project   `yaml:"projects"`
	Skills   struct {
		Languages  []domain.Skill `yaml:"languages"`
		Frameworks []domain.Skill `yaml:"frameworks"`
		Tools      []domain.Skill `yaml:"tools"`
	} `yaml:"skills"`
	Experience      []domain.Experience     `yaml:"experience"`
	Recommendations []domain.Recommendation `yaml:"recommendations"`
}

// InvalidContentError lists every problem found in a content file
type InvalidContentError struct {
	Path     string
	Problems []string
}

func (e *InvalidContentError) Error() string {
	msg := "invalid content in " + e.Path
	for _, p := range e.Problems {
		msg += "\n  - " + p
	}
	return msg
}

// LoadFile reads and validates a content file
func LoadFile(path string, v *validator.Validate) (*domain.SiteContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read content file %s", path)
	}

	c, err := Parse(data, v)
	if err != nil {
		var invalid *InvalidContentError
		if errors.As(err, &invalid) {
			invalid.Path = path
			return nil, invalid
		}
		return nil, errors.Wrapf(err, "failed to parse content file %s", path)
	}
	return c, nil
}

// Parse decodes YAML content. Unknown keys are rejected so typos surface early.
func Parse(data []byte, v *validator.Validate) (*domain.SiteContent, error) {
	if v == nil {
		v = validation.New()
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "yaml")
	}

	c := &domain.SiteContent{
		Profile:         f.Profile,
		Projects:        f.Projects,
		Experience:      f.Experience,
		Recommendations: f.Recommendations,
	}
	c.Skills = appendSkills(c.Skills, domain.SkillLanguages, f.Skills.Languages)
	c.Skills = appendSkills(c.Skills, domain.SkillFrameworks, f.Skills.Frameworks)
	c.Skills = appendSkills(c.Skills, domain.SkillTools, f.Skills.Tools)

	if err := v.Struct(c); err != nil {
		return nil, &InvalidContentError{Problems: validation.FormatValidationErrors(err)}
	}
	return c, nil
}

func appendSkills(dst []domain.Skill, category domain.SkillCategory, skills []domain.Skill) []domain.Skill {
	for _, s := range skills {
		s.Category = category
		dst = append(dst, s)
	}
	return dst
}
