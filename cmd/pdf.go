package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/resume-studio/pkg/config"
	"github.com/nikogura/resume-studio/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var pdfOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var pdfTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var pdfCmd = &cobra.Command{
	Use:   "pdf <markdown-file>",
	Short: "Export a markdown file to PDF",
	Long: `Lay out a markdown file and write it as a paginated PDF, offline.

Headings (#, ##, ###), bold lines (**...**) and bullets (- or •) are styled;
everything else is set as plain text. Page size, margin and line height come
from the pdf section of the config file.

Example:
  resume-studio pdf resume.md
  resume-studio pdf resume.md -o ~/Documents/resume.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "Output PDF path (default: input with .pdf extension)")
	pdfCmd.Flags().StringVar(&pdfTitle, "title", "", "PDF document title")
}

func runPDF(cmd *cobra.Command, args []string) (err error) {
	input := args[0]

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var content []byte
	content, err = os.ReadFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read markdown file: %s", input)
		return err
	}

	output := pdfOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}

	opts := renderer.DefaultOptions()
	opts.Geometry = cfg.PDF.Geometry()
	opts.Title = pdfTitle
	opts.Created = time.Now()

	if getVerbose() {
		fmt.Printf("Rendering %s (%gx%g pt, margin %g)\n", input, opts.Geometry.Width, opts.Geometry.Height, opts.Geometry.Margin)
	}

	var data []byte
	data, err = renderer.Export(string(content), opts)
	if err != nil {
		err = errors.Wrapf(err, "failed to render PDF: %s", input)
		return err
	}

	err = renderer.WritePDF(data, output)
	if err != nil {
		return err
	}

	fmt.Printf("✓ PDF written: %s\n", output)
	return err
}
