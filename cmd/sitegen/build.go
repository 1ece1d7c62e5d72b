package main

import (
	"fmt"
	"strings"

	"go-portfolio-site/internal/content"
	"go-portfolio-site/internal/sitegen"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/internal/view"
	"go-portfolio-site/pkg/thumbnail"
	"go-portfolio-site/pkg/validation"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	outDir        string
	contactAction string
)

//nolint:gochecknoglobals // Cobra boilerplate
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := content.LoadFile(contentPath, validation.New())
		if err != nil {
			return err
		}

		templates, err := view.Templates()
		if err != nil {
			return err
		}

		builder := &sitegen.Builder{
			Content:       c,
			SEO:           usecase.NewSEOUsecase(strings.TrimRight(siteURL, "/")),
			Templates:     templates,
			Thumbnails:    thumbnail.NewScaler(assetsDir, thumbnail.DefaultMaxDimension, thumbnail.DefaultQuality),
			ContactAction: contactAction,
		}

		report, err := builder.Build(cmd.Context(), outDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range report.Files {
			fmt.Fprintf(out, "wrote   %s\n", f)
		}
		for _, s := range report.Skipped {
			fmt.Fprintf(out, "skipped %s\n", s)
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	buildCmd.Flags().StringVar(&contactAction, "contact-action", "", "URL the contact form posts to (default /v1/contact)")
	rootCmd.AddCommand(buildCmd)
}
