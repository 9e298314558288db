package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/linescan/pkg/config"
	"github.com/ccollicutt/linescan/pkg/output"
	"github.com/ccollicutt/linescan/pkg/scanner"
	"github.com/ccollicutt/linescan/pkg/source"
)

// ErrNoFiles is returned when neither arguments nor the rules file name a file.
var ErrNoFiles = errors.New("no input files (pass a path or set files in the rules file)")

// ScanOptions holds command-line options for the scan command.
type ScanOptions struct {
	RulesFile string
	Output    string
	Rules     []string
	Context   int
	Quiet     bool
	Stats     bool
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Report lines matching the substring rules",
		Long: `Scan files line by line and report every line that contains all of a rule's
substrings, with its 1-based line number.

Without --rules the built-in rules are used. Files may be paths or glob
patterns; when none are given, the rules file's "files" list is used.
Every file is read before anything is printed, so an unreadable file
produces an error and no partial report.

Example:
  linescan scan public/index.html
  linescan scan -r rules.yaml -o table 'public/*.html'
  linescan scan --rule dom-content-loaded -C 3 index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.RulesFile, "rules", "r", "", "Rules file (YAML); built-in rules when empty")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format ("+strings.Join(output.Formats, "|")+")")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run specific rule(s) only (can be repeated)")
	cmd.Flags().IntVarP(&opts.Context, "context", "C", config.DefaultContext, "Context lines for rules that print context")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Append scan statistics")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	cfg, err := loadRules(ctx, opts.RulesFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("context") {
		cfg.OverrideContext(opts.Context)
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid --context: %w", err)
		}
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Files
	}
	if len(patterns) == 0 {
		return ErrNoFiles
	}

	files, err := source.ExpandGlobs(patterns)
	if err != nil {
		return fmt.Errorf("expanding file patterns: %w", err)
	}

	s, err := scanner.New(cfg.Rules,
		scanner.WithLogger(logger),
		scanner.WithRuleFilter(opts.Rules))
	if err != nil {
		return fmt.Errorf("creating scanner: %w", err)
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Stats,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	results := make([]*scanner.FileResult, 0, len(files))
	for _, path := range files {
		res, err := s.Scan(ctx, path)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	names := make([]string, 0, len(s.Rules()))
	for _, r := range s.Rules() {
		names = append(names, r.Name)
	}

	report := output.NewReport(results, cfg.Banner, output.Metadata{
		RulesFile: opts.RulesFile,
		Rules:     names,
		ScannedAt: started,
		Duration:  time.Since(started),
	})

	logger.Info("scan complete",
		zap.Int("files", report.Summary.FilesScanned),
		zap.Int("lines", report.Summary.LinesScanned),
		zap.Int("matches", report.Summary.Matches))

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

// loadRules returns the rules file at path, or the built-in rules when path is
// empty.
func loadRules(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg, err := config.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("loading built-in rules: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return cfg, nil
}
