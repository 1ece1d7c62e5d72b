package usecase

import (
	"context"

	"go-portfolio-site/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	sender domain.EmailSender
	source domain.ContentSource
}

func NewHealthUsecase(sender domain.EmailSender, source domain.ContentSource) HealthUsecase {
	return &healthUsecase{sender: sender, source: source}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "ok",
		"content": "loaded",
		"email":   "configured",
	}
	if u.source == nil || u.source.Current() == nil {
		status["status"] = "degraded"
		status["content"] = "missing"
	}
	if u.sender == nil || !u.sender.IsConfigured() {
		status["email"] = "unconfigured"
	}
	return status
}
