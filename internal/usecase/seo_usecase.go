package usecase

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"go-portfolio-site/internal/domain"
)

const (
	sitemapIndexFile = "sitemap-index.xml"
	sitemapFile      = "sitemap-0.xml"
	sitemapXMLNS     = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

// SitemapPages are the public pages listed in the sitemap, relative to the site root
var SitemapPages = []string{""}

type seoUsecase struct {
	siteURL string
}

// NewSEOUsecase builds crawler documents for the given canonical site URL
func NewSEOUsecase(siteURL string) domain.SEOUsecase {
	return &seoUsecase{siteURL: siteURL}
}

// base returns the site URL as a directory so relative references resolve under it
func (uc *seoUsecase) base() (*url.URL, error) {
	if strings.TrimSpace(uc.siteURL) == "" {
		return nil, domain.ErrSiteURLNotConfigured
	}
	u, err := url.Parse(uc.siteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid site URL %q", domain.ErrSiteURLNotConfigured, uc.siteURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

func (uc *seoUsecase) resolve(ref string) (string, error) {
	base, err := uc.base()
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

// RobotsTxt allows everything except the script proxy and points at the sitemap
func (uc *seoUsecase) RobotsTxt(ctx context.Context) (string, error) {
	sitemapURL, err := uc.resolve(sitemapIndexFile)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /~partytown/\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", sitemapURL)
	return b.String(), nil
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	XMLNS    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapLoc `xml:"url"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// SitemapIndex lists the sitemap files
func (uc *seoUsecase) SitemapIndex(ctx context.Context) ([]byte, error) {
	loc, err := uc.resolve(sitemapFile)
	if err != nil {
		return nil, err
	}
	return marshalXML(sitemapIndex{XMLNS: sitemapXMLNS, Sitemaps: []sitemapLoc{{Loc: loc}}})
}

// Sitemap lists the public pages
func (uc *seoUsecase) Sitemap(ctx context.Context) ([]byte, error) {
	set := urlSet{XMLNS: sitemapXMLNS}
	for _, page := range SitemapPages {
		loc, err := uc.resolve(page)
		if err != nil {
			return nil, err
		}
		set.URLs = append(set.URLs, sitemapLoc{Loc: loc})
	}
	return marshalXML(set)
}

func marshalXML(v any) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
