package domain

import (
	"context"
	"errors"
)

// ErrSiteURLNotConfigured is returned by crawler endpoints when the canonical
// site URL is unknown
var ErrSiteURLNotConfigured = errors.New("site URL not available")

// SEOUsecase produces crawler facing documents
type SEOUsecase interface {
	RobotsTxt(ctx context.Context) (string, error)
	SitemapIndex(ctx context.Context) ([]byte, error)
	Sitemap(ctx context.Context) ([]byte, error)
}
