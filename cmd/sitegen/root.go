package main

import (
	"os"

	"go-portfolio-site/config"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	contentPath string
	assetsDir   string
	siteURL     string
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Export the portfolio site as static files",
	Long: `sitegen renders the portfolio landing page, robots.txt, the sitemaps and
project thumbnails from the content file, for hosting without the Go server.

Flags default to the same environment variables the server reads.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = &config.Config{ContentPath: "content/site.yaml", AssetsDir: "static"}
	}

	rootCmd.PersistentFlags().StringVar(&contentPath, "content", cfg.ContentPath, "content file (CONTENT_PATH)")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", cfg.AssetsDir, "assets directory holding project images (ASSETS_DIR)")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site-url", cfg.SiteURL, "canonical site URL (SITE_URL)")
}
