package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/resume-studio/pkg/config"
	"github.com/nikogura/resume-studio/pkg/jd"
	"github.com/nikogura/resume-studio/pkg/llm"
	"github.com/nikogura/resume-studio/pkg/profile"
	"github.com/nikogura/resume-studio/pkg/renderer"
	"github.com/nikogura/resume-studio/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profilePath string

//nolint:gochecknoglobals // Cobra boilerplate
var docType string

//nolint:gochecknoglobals // Cobra boilerplate
var company string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var skipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var pdfOnly bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate <jd-file-or-url>",
	Short: "Generate a resume and cover letter for a job description",
	Long: `Generate a resume and/or cover letter for a job description.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

Your details come from a profile file (JSON or YAML) with name, contact
details, experience, skills and education.

Example:
  resume-studio generate jd.txt --profile profile.yaml
  resume-studio generate https://example.com/jobs/123 --profile profile.json --type resume
  resume-studio generate jd.txt --profile profile.yaml --company "Acme" --skip-pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&profilePath, "profile", "", "Profile file with your experience (required)")
	generateCmd.Flags().StringVar(&docType, "type", string(llm.TypeBoth), "What to generate: resume, cover-letter or both")
	generateCmd.Flags().StringVar(&company, "company", "", "Company name (extracted from JD if not provided)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	generateCmd.Flags().BoolVar(&skipPDF, "skip-pdf", false, "Skip PDF generation")
	generateCmd.Flags().BoolVar(&pdfOnly, "pdf-only", false, "Remove markdown files once the PDFs are written")
	_ = generateCmd.MarkFlagRequired("profile")
}

// outputFilenames holds the paths written for one application.
type outputFilenames struct {
	resumeMD  string
	resumePDF string
	coverMD   string
	coverPDF  string
	jdTXT     string
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, cfg.Completion.Timeout()*4)
	defer cancel()

	var jobDescription string
	jobDescription, err = fetchAndLogJD(args[0])
	if err != nil {
		return err
	}

	var p profile.Profile
	p, err = loadAndLogProfile(profilePath)
	if err != nil {
		return err
	}

	var completer llm.Completer
	completer, err = llm.NewCompleter(cfg.Completion)
	if err != nil {
		return err
	}

	service := llm.NewService(completer, nil, nil)
	req := buildRequest(jobDescription, p, llm.DocumentType(docType))

	var docs llm.Documents
	err = withSpinner(fmt.Sprintf("Generating %s...", describeType(req.Type)), func() (genErr error) {
		docs, genErr = service.GenerateDocuments(ctx, req)
		return genErr
	})
	if err != nil {
		err = errors.Wrap(err, "generation failed")
		return err
	}

	finalCompany := resolveCompany(company, jobDescription)

	baseOutDir := outputDir
	if baseOutDir == "" {
		baseOutDir = cfg.Defaults.OutputDir
	}

	var outDir string
	outDir, err = createCompanyOutputDir(baseOutDir, finalCompany)
	if err != nil {
		return err
	}

	filenames := buildFilenames(outDir, p.Name, finalCompany, time.Now())

	err = writeOutputs(docs, jobDescription, filenames, cfg)
	if err != nil {
		return err
	}

	printSummary(docs, filenames)

	return err
}

func buildRequest(jobDescription string, p profile.Profile, kind llm.DocumentType) (req llm.Request) {
	req = llm.Request{
		JobDescription: jobDescription,
		UserExperience: p.ExperienceText(),
		UserName:       p.Name,
		UserEmail:      p.Email,
		UserPhone:      p.Phone,
		UserLocation:   p.Location,
		Skills:         p.SkillsText(),
		Education:      p.Education,
		Type:           kind,
	}
	if req.Type == "" {
		req.Type = llm.TypeBoth
	}
	return req
}

// describeType names a document type for humans, e.g. "Cover Letter".
func describeType(kind llm.DocumentType) (desc string) {
	titleCaser := cases.Title(language.English)
	switch kind {
	case llm.TypeBoth:
		desc = "Resume and Cover Letter"
	default:
		desc = titleCaser.String(strings.ReplaceAll(string(kind), "-", " "))
	}
	return desc
}

func fetchAndLogJD(jdInput string) (jobDescription string, err error) {
	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	jobDescription, err = jd.Fetch(jdInput)
	if err != nil {
		// If fetching failed, offer to accept manual input
		fmt.Printf("\nWarning: Failed to fetch job description: %v\n", err)
		fmt.Println("This often happens with JavaScript-rendered pages (Lever, Workable, etc.)")
		fmt.Println("\nPlease paste the job description text below.")
		fmt.Println("When finished, press Ctrl+D (Unix/Mac) or Ctrl+Z then Enter (Windows):")
		fmt.Println()

		jobDescription, err = readStdin()
		if err != nil {
			return jobDescription, err
		}

		fmt.Printf("\nJob description received (%d characters)\n", len(jobDescription))
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}

func readStdin() (text string, err error) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if scanner.Err() != nil {
		err = errors.Wrap(scanner.Err(), "failed to read job description from stdin")
		return text, err
	}

	text = strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		err = errors.New("no job description provided")
		return text, err
	}

	return text, err
}

func loadAndLogProfile(path string) (p profile.Profile, err error) {
	if getVerbose() {
		fmt.Printf("Loading profile from: %s\n", path)
	}

	p, err = profile.Load(path)
	if err != nil {
		err = errors.Wrap(err, "failed to load profile")
		return p, err
	}

	if getVerbose() {
		fmt.Printf("Loaded profile for %s (%d positions, %d skills)\n", p.Name, len(p.Positions), len(p.Skills))
	}

	return p, err
}

// resolveCompany prefers the flag, then the JD heuristic, then "general".
func resolveCompany(flagValue, jobDescription string) (finalCompany string) {
	finalCompany = flagValue
	if finalCompany != "" {
		return finalCompany
	}

	finalCompany = llm.ExtractCompany(jobDescription)
	if finalCompany != "" {
		if getVerbose() {
			fmt.Printf("Extracted company from JD: %s\n", finalCompany)
		}
		return finalCompany
	}

	finalCompany = "general"
	return finalCompany
}

func createCompanyOutputDir(baseOutDir, company string) (outDir string, err error) {
	outDir = filepath.Join(baseOutDir, sanitizeFilename(company))
	err = os.MkdirAll(outDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outDir)
		return outDir, err
	}
	return outDir, err
}

func sanitizeFilename(name string) (sanitized string) {
	// Remove common company suffixes
	suffixes := []string{
		", LLC", ", Inc.", ", Inc",
		" LLC", " Inc.", " Inc",
		" Corporation", " Corp.", " Corp",
		" Limited", " Ltd.", " Ltd",
		" Co.", " Co",
	}

	sanitized = strings.TrimSpace(name)
	for _, suffix := range suffixes {
		if len(sanitized) > len(suffix) && strings.EqualFold(sanitized[len(sanitized)-len(suffix):], suffix) {
			sanitized = sanitized[:len(sanitized)-len(suffix)]
		}
	}

	sanitized = strings.ToLower(sanitized)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// buildFilenames generates all output file paths.
func buildFilenames(outDir, name, company string, now time.Time) (filenames outputFilenames) {
	base := sanitizeFilename(name) + "-" + sanitizeFilename(company) + "-" + now.Format("20060102-150405")
	base = strings.Trim(base, "-")

	filenames = outputFilenames{
		resumeMD:  filepath.Join(outDir, base+"-resume.md"),
		resumePDF: filepath.Join(outDir, base+"-resume.pdf"),
		coverMD:   filepath.Join(outDir, base+"-cover.md"),
		coverPDF:  filepath.Join(outDir, base+"-cover.pdf"),
		jdTXT:     filepath.Join(outDir, base+"-jd.txt"),
	}

	return filenames
}

// writeOutputs writes the JD, markdown for each generated document, and a
// PDF next to each unless --skip-pdf is set. With --pdf-only the markdown is
// removed after the PDFs are written.
func writeOutputs(docs llm.Documents, jobDescription string, filenames outputFilenames, cfg config.Config) (err error) {
	err = renderer.WriteMarkdown(jobDescription, filenames.jdTXT)
	if err != nil {
		err = errors.Wrap(err, "failed to write job description")
		return err
	}

	opts := renderer.DefaultOptions()
	opts.Geometry = cfg.PDF.Geometry()
	opts.Created = time.Now()

	outputs := []struct {
		content string
		mdPath  string
		pdfPath string
		title   string
	}{
		{content: docs.Resume, mdPath: filenames.resumeMD, pdfPath: filenames.resumePDF, title: "Resume"},
		{content: docs.CoverLetter, mdPath: filenames.coverMD, pdfPath: filenames.coverPDF, title: "Cover Letter"},
	}

	var written []string
	for _, out := range outputs {
		if out.content == "" {
			continue
		}

		err = renderer.WriteMarkdown(out.content, out.mdPath)
		if err != nil {
			err = errors.Wrapf(err, "failed to write %s markdown", strings.ToLower(out.title))
			return err
		}
		written = append(written, out.mdPath)

		if skipPDF {
			continue
		}

		opts.Title = out.title

		var data []byte
		data, err = renderer.Export(out.content, opts)
		if err != nil {
			err = errors.Wrapf(err, "failed to render %s PDF", strings.ToLower(out.title))
			return err
		}

		err = renderer.WritePDF(data, out.pdfPath)
		if err != nil {
			return err
		}
	}

	if pdfOnly && !skipPDF {
		err = renderer.CleanupMarkdown(written...)
		if err != nil {
			return err
		}
	}

	return err
}

func printSummary(docs llm.Documents, filenames outputFilenames) {
	fmt.Println("\n✓ Generation complete!")
	fmt.Println("\nOutput files:")
	if docs.Resume != "" {
		printPaths("Resume:      ", filenames.resumeMD, filenames.resumePDF)
	}
	if docs.CoverLetter != "" {
		printPaths("Cover Letter:", filenames.coverMD, filenames.coverPDF)
	}
	fmt.Printf("  JD:           %s\n", filenames.jdTXT)

	if len(docs.Keywords) > 0 {
		fmt.Printf("\nATS keywords: %s\n", strings.Join(docs.Keywords, ", "))
	}

	if docs.ATSScore != nil {
		fmt.Printf("ATS coverage: %d%% (%d of %d keywords)\n",
			docs.ATSScore.Percent, len(docs.ATSScore.Matched), len(docs.ATSScore.Matched)+len(docs.ATSScore.Missing))

		lessons := scorer.Lessons(*docs.ATSScore)
		for _, lesson := range lessons {
			fmt.Printf("  - %s\n", lesson)
		}
	}

	if len(docs.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, suggestion := range docs.Suggestions {
			fmt.Printf("  - %s\n", suggestion)
		}
	}
}

// printPaths lists the files left on disk for one document.
func printPaths(label, mdPath, pdfPath string) {
	var paths []string
	if !pdfOnly || skipPDF {
		paths = append(paths, mdPath)
	}
	if !skipPDF {
		paths = append(paths, pdfPath)
	}
	for i, path := range paths {
		if i == 0 {
			fmt.Printf("  %s %s\n", label, path)
			continue
		}
		fmt.Printf("  %s %s\n", strings.Repeat(" ", len(label)), path)
	}
}
