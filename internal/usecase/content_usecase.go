package usecase

import (
	"context"
	"fmt"

	"go-portfolio-site/internal/domain"
)

type contentUsecase struct {
	source domain.ContentSource
}

// NewContentUsecase serves read access to the site content
func NewContentUsecase(source domain.ContentSource) domain.ContentUsecase {
	return &contentUsecase{source: source}
}

func (uc *contentUsecase) Content(ctx context.Context) *domain.SiteContent {
	return uc.source.Current()
}

func (uc *contentUsecase) GetProfile(ctx context.Context) domain.SiteProfile {
	return uc.source.Current().Profile
}

func (uc *contentUsecase) ListProjects(ctx context.Context) []domain.Project {
	return uc.source.Current().Projects
}

// GetProject returns the project at its zero-based position in the gallery
func (uc *contentUsecase) GetProject(ctx context.Context, index int) (*domain.Project, error) {
	projects := uc.source.Current().Projects
	if index < 0 || index >= len(projects) {
		return nil, fmt.Errorf("project %d: %w", index, domain.ErrNotFound)
	}
	project := projects[index]
	return &project, nil
}

// ListSkills returns every skill, or one category when category is set
func (uc *contentUsecase) ListSkills(ctx context.Context, category domain.SkillCategory) ([]domain.Skill, error) {
	content := uc.source.Current()
	if category == "" {
		return content.Skills, nil
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown skill category %q", category)
	}
	return content.SkillsIn(category), nil
}
