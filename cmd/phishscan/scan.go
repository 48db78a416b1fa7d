package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/extractor"
	"github.com/phishscan/phishscan/internal/fetch"
	phlog "github.com/phishscan/phishscan/internal/log"
	"github.com/phishscan/phishscan/internal/ocr"
	"github.com/phishscan/phishscan/internal/registry"
	"github.com/phishscan/phishscan/internal/report"
	"github.com/phishscan/phishscan/internal/vectorizer"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <url> [url...]",
		Short: "Extract phishing features from one or more URLs",
		Long: `Scan fetches each URL and extracts the full feature vector.

The page is fetched over HTTP, parsed, and run through the URL, content,
structure, urgency, visual, and registration analyzers. Analyzers that
fail (unreachable WHOIS server, broken images) contribute zero-valued
defaults instead of aborting the scan.

Examples:
  # Scan a single URL
  phishscan scan http://suspicious-site.xyz/login

  # Scan several URLs in sequence
  phishscan scan http://site1.xyz http://site2.top

  # Output JSON for pipeline consumption
  phishscan scan --json http://suspicious-site.xyz

  # Render pages with a headless browser when plain fetch yields nothing
  phishscan scan --headless http://suspicious-site.xyz

  # Use a trained vectorizer model and custom keyword corpora
  phishscan scan --vectorizer model.yaml --corpora corpora.yaml http://site.xyz`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for fetching each page")
	cmd.Flags().Bool("headless", false,
		"Fall back to headless browser rendering when plain fetch yields no content")
	cmd.Flags().Bool("no-whois", false,
		"Skip the WHOIS registration lookup (registration features default to zero)")
	cmd.Flags().Bool("no-images", false,
		"Skip remote image fetching (inline data-URL images are still analyzed)")

	// Model flags
	cmd.Flags().String("corpora", "",
		"YAML file overriding the built-in keyword corpora (default: corpora.yaml in the phishscan config directory, when present)")
	cmd.Flags().String("vectorizer", "",
		"Trained vectorizer model file (default: vectorizer.yaml in the phishscan config directory, else untrained)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("show-features", false,
		"Include the full feature table in text output")

	return cmd
}

// scanOptions holds the resolved scan command flags.
type scanOptions struct {
	cfg          *config.Config
	targets      []string
	jsonOut      bool
	markdownOut  bool
	outputPath   string
	showFeatures bool
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildScanOptions(cmd, args)
	if err != nil {
		return err
	}

	if err := opts.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if opts.jsonOut && opts.markdownOut {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	logger := phlog.NewLogger(os.Stderr, opts.cfg.Verbose)
	slog.SetDefault(logger)

	// Context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, opts, logger)
}

// buildScanOptions creates scanOptions from cobra command flags.
func buildScanOptions(cmd *cobra.Command, args []string) (*scanOptions, error) {
	cfg := config.NewConfig()

	var err error
	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.UseHeadless, err = cmd.Flags().GetBool("headless")
	if err != nil {
		return nil, err
	}
	cfg.DisableWhois, err = cmd.Flags().GetBool("no-whois")
	if err != nil {
		return nil, err
	}
	cfg.DisableImageFetch, err = cmd.Flags().GetBool("no-images")
	if err != nil {
		return nil, err
	}
	cfg.CorporaPath, err = cmd.Flags().GetString("corpora")
	if err != nil {
		return nil, err
	}
	cfg.VectorizerPath, err = cmd.Flags().GetString("vectorizer")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	opts := &scanOptions{cfg: cfg, targets: args}

	opts.jsonOut, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	opts.markdownOut, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	opts.outputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	opts.showFeatures, err = cmd.Flags().GetBool("show-features")
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// defaultCorporaPath returns the XDG location checked when no corpora
// file is configured explicitly.
func defaultCorporaPath() string {
	return filepath.Join(config.XDGConfigDir(), "corpora.yaml")
}

// defaultVectorizerPath returns the XDG location checked when no
// vectorizer model is configured explicitly.
func defaultVectorizerPath() string {
	return filepath.Join(config.XDGConfigDir(), "vectorizer.yaml")
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// loadCorpora returns the keyword corpora. An explicitly configured
// path must load; the XDG default is used only when present.
func loadCorpora(cfg *config.Config) (*config.KeywordCorpora, error) {
	path := cfg.CorporaPath
	if path == "" {
		path = defaultCorporaPath()
		if !fileExists(path) {
			return config.DefaultCorpora(), nil
		}
	}
	corpora, err := config.LoadCorpora(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpora %s: %w", path, err)
	}
	return corpora, nil
}

// loadVectorizer returns the text vectorizer. An explicitly configured
// path must load; the XDG default is used only when present.
func loadVectorizer(cfg *config.Config) (*vectorizer.Model, error) {
	path := cfg.VectorizerPath
	if path == "" {
		path = defaultVectorizerPath()
		if !fileExists(path) {
			return vectorizer.NewDefault(config.DefaultVectorDim), nil
		}
	}
	vec, err := vectorizer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vectorizer %s: %w", path, err)
	}
	return vec, nil
}

// buildEngine assembles the extraction engine from the configuration.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*extractor.Engine, error) {
	corpora, err := loadCorpora(cfg)
	if err != nil {
		return nil, err
	}
	vec, err := loadVectorizer(cfg)
	if err != nil {
		return nil, err
	}

	engineOpts := []extractor.Option{
		extractor.WithLogger(logger),
		extractor.WithImageConcurrency(cfg.ImageConcurrency),
		extractor.WithOCREngine(ocr.NewEngine()),
	}
	if !cfg.DisableImageFetch {
		engineOpts = append(engineOpts, extractor.WithImageFetcher(fetch.NewHTTPImageFetcher(
			fetch.WithImageUserAgent(cfg.UserAgent),
			fetch.WithMaxImageSize(cfg.MaxImageSize),
			fetch.WithImageTimeout(cfg.ImageTimeout),
		)))
	}
	if !cfg.DisableWhois {
		engineOpts = append(engineOpts, extractor.WithRegistryLookup(registry.NewWhoisLookup(
			registry.WithWhoisTimeout(cfg.WhoisTimeout),
		)))
	}

	return extractor.NewEngine(corpora, vec, engineOpts...), nil
}

// runScan fetches and extracts each target in sequence.
func runScan(ctx context.Context, opts *scanOptions, logger *slog.Logger) error {
	engine, err := buildEngine(opts.cfg, logger)
	if err != nil {
		return err
	}

	client := fetch.NewClient(
		fetch.WithTimeout(opts.cfg.FetchTimeout),
		fetch.WithUserAgent(opts.cfg.UserAgent),
		fetch.WithMaxBodySize(opts.cfg.MaxBodySize),
	)
	var headless *fetch.HeadlessFetcher
	if opts.cfg.UseHeadless {
		headless = fetch.NewHeadlessFetcher(
			fetch.WithHeadlessTimeout(opts.cfg.HeadlessTimeout),
			fetch.WithHeadlessUserAgent(opts.cfg.UserAgent),
		)
	}

	writer, cleanup, err := buildWriter(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	var lastErr error
	for _, target := range opts.targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintf(os.Stderr, "Scanning %s...\n", target)
		startTime := time.Now()

		html := fetchPage(ctx, client, headless, target, logger)

		extReport, err := engine.Extract(ctx, target, html)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.Error("extraction failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Extraction error for %s: %v\n", target, err)
			lastErr = err
			continue
		}

		fmt.Fprintf(os.Stderr, "Scan completed in %s\n", time.Since(startTime).Round(time.Millisecond))

		if _, err := writer.Write(extReport); err != nil {
			logger.Error("report failed", "target", target, "error", err)
			lastErr = err
		}
	}

	return lastErr
}

// fetchPage retrieves the page HTML, falling back to headless rendering
// when configured. Returns empty HTML on total failure so the extraction
// can still produce URL-only features.
func fetchPage(ctx context.Context, client *fetch.Client, headless *fetch.HeadlessFetcher, target string, logger *slog.Logger) string {
	html, err := client.Fetch(ctx, target)
	if err == nil && html != "" {
		return html
	}
	if err != nil {
		logger.Warn("page fetch failed", "target", target, "error", err)
	}

	if headless != nil {
		rendered, herr := headless.Fetch(ctx, target)
		if herr == nil && rendered != "" {
			logger.Info("headless fallback succeeded", "target", target)
			return rendered
		}
		if herr != nil {
			logger.Warn("headless fetch failed", "target", target, "error", herr)
		}
	}

	return html
}

// buildWriter creates the report writer for the selected output format
// and destination. The returned cleanup closes the output file if one
// was opened.
func buildWriter(opts *scanOptions) (report.Writer, func(), error) {
	output, cleanup, err := openOutput(opts.outputPath)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case opts.jsonOut:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint()), cleanup, nil
	case opts.markdownOut:
		return report.NewMarkdownWriter(output), cleanup, nil
	default:
		return report.NewSimpleWriter(output, report.WithShowFeatures(opts.showFeatures)), cleanup, nil
	}
}

// openOutput opens the output destination. Empty path means stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
