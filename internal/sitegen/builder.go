// Package sitegen exports the site as static files.
package sitegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/view"
	"go-portfolio-site/pkg/thumbnail"

	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent thumbnail encodes
const maxParallel = 4

// DefaultContactAction is the form target of an exported page
const DefaultContactAction = "/v1/contact"

// Thumbnailer produces scaled project images
type Thumbnailer interface {
	Thumbnail(ref string) ([]byte, error)
}

// Builder renders every public document into a directory
type Builder struct {
	Content    *domain.SiteContent
	SEO        domain.SEOUsecase
	Templates  *template.Template
	Thumbnails Thumbnailer
	// ContactAction is where the exported form posts; defaults to the api
	// contact endpoint, which takes form posts without a CSRF token
	ContactAction string
	Now           func() time.Time
}

// Report lists what a build wrote and what it left out
type Report struct {
	Files   []string
	Skipped []string
}

// Build writes the site below outDir. Crawler files are skipped when the site
// URL is unknown; every other failure aborts the build.
func (b *Builder) Build(ctx context.Context, outDir string) (*Report, error) {
	if b.Content == nil {
		return nil, errors.New("sitegen: no content")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("sitegen: create output dir: %w", err)
	}

	var (
		mu     sync.Mutex
		report = &Report{}
	)
	wrote := func(name string) {
		mu.Lock()
		report.Files = append(report.Files, name)
		mu.Unlock()
	}
	skipped := func(name, reason string) {
		mu.Lock()
		report.Skipped = append(report.Skipped, name+": "+reason)
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallel)

	eg.Go(func() error {
		data, err := b.renderIndex()
		if err != nil {
			return err
		}
		return b.write(outDir, "index.html", data, wrote)
	})

	crawlerFiles := map[string]func(context.Context) ([]byte, error){
		"robots.txt": func(ctx context.Context) ([]byte, error) {
			s, err := b.SEO.RobotsTxt(ctx)
			return []byte(s), err
		},
		"sitemap-index.xml": b.SEO.SitemapIndex,
		"sitemap-0.xml":     b.SEO.Sitemap,
	}
	for name, render := range crawlerFiles {
		name, render := name, render
		eg.Go(func() error {
			data, err := render(egCtx)
			if errors.Is(err, domain.ErrSiteURLNotConfigured) {
				skipped(name, err.Error())
				return nil
			}
			if err != nil {
				return fmt.Errorf("sitegen: %s: %w", name, err)
			}
			return b.write(outDir, name, data, wrote)
		})
	}

	for _, ref := range b.localThumbnails() {
		ref := ref
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := b.Thumbnails.Thumbnail(ref)
			if err != nil {
				return fmt.Errorf("sitegen: thumbnail: %w", err)
			}
			return b.write(outDir, filepath.Join("thumbnails", thumbnail.OutputName(ref)), data, wrote)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(report.Files)
	sort.Strings(report.Skipped)
	return report, nil
}

func (b *Builder) renderIndex() ([]byte, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	page := view.NewPage(b.Content, now())
	page.Contact.Action = DefaultContactAction
	if b.ContactAction != "" {
		page.Contact.Action = b.ContactAction
	}

	var buf bytes.Buffer
	if err := view.Render(&buf, b.Templates, page); err != nil {
		return nil, fmt.Errorf("sitegen: render index: %w", err)
	}
	return buf.Bytes(), nil
}

// localThumbnails lists distinct project images served from the assets dir
func (b *Builder) localThumbnails() []string {
	if b.Thumbnails == nil {
		return nil
	}
	seen := map[string]bool{}
	var refs []string
	for _, p := range b.Content.Projects {
		ref := p.Thumbnail
		if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			continue
		}
		if name := thumbnail.OutputName(ref); name != "" && !seen[name] {
			seen[name] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

func (b *Builder) write(outDir, name string, data []byte, wrote func(string)) error {
	path := filepath.Join(outDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sitegen: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sitegen: write %s: %w", name, err)
	}
	wrote(filepath.ToSlash(name))
	return nil
}
