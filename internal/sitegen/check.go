package sitegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/thumbnail"
)

// Check describes loaded content and returns warnings for project images
// missing from assetsDir
func Check(w io.Writer, c *domain.SiteContent, assetsDir string) []string {
	fmt.Fprintf(w, "profile:          %s (%s)\n", c.Profile.Name, c.Profile.Headline)
	fmt.Fprintf(w, "projects:         %d\n", len(c.Projects))
	for _, category := range domain.SkillCategories {
		fmt.Fprintf(w, "skills/%-10s %d\n", string(category)+":", len(c.SkillsIn(category)))
	}
	fmt.Fprintf(w, "experience:       %d\n", len(c.Experience))
	fmt.Fprintf(w, "recommendations:  %d\n", len(c.Recommendations))

	var warnings []string
	for _, p := range c.Projects {
		ref := p.Thumbnail
		if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			continue
		}
		name := thumbnail.OutputName(ref)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("project %q: invalid thumbnail path %q", p.Title, ref))
			continue
		}
		if _, err := os.Stat(filepath.Join(assetsDir, filepath.FromSlash(name))); err != nil {
			warnings = append(warnings, fmt.Sprintf("project %q: thumbnail %s not found in %s", p.Title, name, assetsDir))
		}
	}
	return warnings
}
