package main

import (
	"fmt"

	"go-portfolio-site/internal/content"
	"go-portfolio-site/internal/sitegen"
	"go-portfolio-site/pkg/validation"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var strict bool

//nolint:gochecknoglobals // Cobra boilerplate
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content file and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := content.LoadFile(contentPath, validation.New())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s is valid\n", contentPath)
		warnings := sitegen.Check(out, c, assetsDir)
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		if strict && len(warnings) > 0 {
			return fmt.Errorf("%d warning(s)", len(warnings))
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	checkCmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings")
	rootCmd.AddCommand(checkCmd)
}
