// Package view renders the landing page from site content.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"go-portfolio-site/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the full landing page template
const PageTemplate = "page"

// NavItem is one entry in the header menu
type NavItem struct {
	Label  string
	Href   string
	NewTab bool
}

// Nav is the header navigation. MenuOpen only affects narrow screens.
type Nav struct {
	Brand    string
	Items    []NavItem
	MenuOpen bool
}

// Toggle flips the mobile menu
func (n Nav) Toggle() Nav {
	n.MenuOpen = !n.MenuOpen
	return n
}

// SkillGroup is a titled list of skills
type SkillGroup struct {
	Category domain.SkillCategory
	Label    string
	Skills   []domain.Skill
}

// ContactView is the contact section state
type ContactView struct {
	Submission   domain.Submission
	CSRFToken    string
	Action       string
	MessageSent  bool
	IsSubmitting bool
}

// Page is the view model of the landing page
type Page struct {
	Title       string
	Description string
	Canonical   string
	Year        int

	Nav             Nav
	Profile         domain.SiteProfile
	SkillGroups     []SkillGroup
	Projects        []domain.Project
	Experience      []domain.Experience
	Recommendations []domain.Recommendation
	Contact         ContactView
	// ThumbnailBase prefixes project thumbnail references
	ThumbnailBase string
}

// NewPage composes the landing page for content
func NewPage(c *domain.SiteContent, now time.Time) Page {
	p := Page{
		Title:           fmt.Sprintf("%s | %s", c.Profile.Name, c.Profile.Headline),
		Description:     c.Profile.Headline,
		Canonical:       c.Profile.BaseURL,
		Year:            now.Year(),
		Nav:             NewNav(c),
		Profile:         c.Profile,
		Projects:        c.Projects,
		Experience:      c.Experience,
		Recommendations: c.Recommendations,
		Contact: ContactView{
			Action: "/contact",
			Submission: domain.Submission{
				Values: map[string]string{},
			},
		},
		ThumbnailBase: "/thumbnails/",
	}
	for _, category := range domain.SkillCategories {
		if skills := c.SkillsIn(category); len(skills) > 0 {
			p.SkillGroups = append(p.SkillGroups, SkillGroup{Category: category, Label: category.Label(), Skills: skills})
		}
	}
	return p
}

// NewNav builds the header menu. Sections without content are left out.
func NewNav(c *domain.SiteContent) Nav {
	nav := Nav{Brand: c.Profile.Name}
	if len(c.Skills) > 0 {
		nav.Items = append(nav.Items, NavItem{Label: "Skills", Href: "#skills"})
	}
	if len(c.Projects) > 0 {
		nav.Items = append(nav.Items, NavItem{Label: "Projects", Href: "#projects"})
	}
	if len(c.Experience) > 0 {
		nav.Items = append(nav.Items, NavItem{Label: "Experience", Href: "#experience"})
	}
	nav.Items = append(nav.Items, NavItem{Label: "Contact", Href: "#contact"})
	if c.Profile.Resume != nil {
		nav.Items = append(nav.Items, NavItem{Label: c.Profile.Resume.Label, Href: c.Profile.Resume.URL, NewTab: true})
	}
	return nav
}

// WithSubmission attaches a contact form state to the page
func (p Page) WithSubmission(s domain.Submission, csrfToken string) Page {
	p.Contact.Submission = s
	p.Contact.MessageSent = s.MessageSent
	p.Contact.IsSubmitting = s.IsSubmitting
	p.Contact.CSRFToken = csrfToken
	return p
}

var funcs = template.FuncMap{
	"markdown": Markdown,
	"quote":    Quote,
	"fields":   func() []string { return domain.ContactFields },
	"fieldLabel": func(field string) string {
		switch field {
		case domain.FieldName:
			return "Your name"
		case domain.FieldEmail:
			return "Your email"
		default:
			return "How can I help you?"
		}
	},
	"fieldPlaceholder": func(field string) string {
		switch field {
		case domain.FieldName:
			return "eg. John Doe"
		case domain.FieldEmail:
			return "eg. johndoe@example.com"
		default:
			return "Enter your message here"
		}
	},
	"isTextarea": func(field string) bool { return field == domain.FieldMessage },
	"inputType": func(field string) string {
		if field == domain.FieldEmail {
			return "email"
		}
		return "text"
	},
	"sentMessage":  func() string { return domain.MessageSent },
	"generalField": func() string { return domain.FieldGeneral },
	"thumbURL":     ThumbnailURL,
}

// ThumbnailURL maps a thumbnail reference to the URL the gallery loads.
// Remote images are linked as they are.
func ThumbnailURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return base + strings.TrimPrefix(ref, "/")
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.New(PageTemplate).Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start-up
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Render writes the full page
func Render(w io.Writer, tmpl *template.Template, p Page) error {
	return tmpl.ExecuteTemplate(w, PageTemplate, p)
}
