package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/dataset"
	"github.com/phishscan/phishscan/internal/fetch"
	phlog "github.com/phishscan/phishscan/internal/log"
	"github.com/spf13/cobra"
)

// NewDatasetCmd creates the dataset command.
func NewDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Build a labeled training dataset from URLs or saved pages",
		Long: `Dataset extracts features from many pages and writes a labeled CSV
suitable for training a classifier.

Input is either a URL list file (one URL per line, optional ",label"
suffix where 1 means phishing) or a directory of saved HTML pages,
which are treated as phishing samples. URLs whose fetch fails still
produce a row with URL-only features, matching what the classifier
sees at prediction time for unreachable pages.

Examples:
  # Extract features for a labeled URL list
  phishscan dataset --input urls.csv --output features.csv

  # Treat every line as phishing (label 1)
  phishscan dataset --input phishtank.txt --label 1 --output features.csv

  # Build from a directory of saved phishing pages
  phishscan dataset --html-dir ./pages --output features.csv

  # Write the CSV only, without updating the SQLite feature store
  phishscan dataset --input urls.csv --output features.csv --no-db`,
		RunE: runDatasetCmd,
	}

	// Input flags
	cmd.Flags().StringP("input", "i", "",
		"URL list file (one URL per line, optional \",label\" suffix)")
	cmd.Flags().String("html-dir", "",
		"Directory of saved HTML pages (all labeled as phishing)")
	cmd.Flags().Int("label", 0,
		"Default label for URLs without an explicit one (0=benign, 1=phishing)")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"CSV output path (default: stdout)")
	cmd.Flags().String("db", config.XDGDataDir(),
		"Directory for the SQLite feature store")
	cmd.Flags().Bool("no-db", false,
		"Skip persisting records to the SQLite feature store")

	// Throughput flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent extractions")
	cmd.Flags().Float64("rate", config.DefaultRequestsPerSecond,
		"Maximum page fetches per second across all workers (0 disables limiting)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for fetching each page")

	// Model flags
	cmd.Flags().String("corpora", "",
		"YAML file overriding the built-in keyword corpora (default: corpora.yaml in the phishscan config directory, when present)")
	cmd.Flags().String("vectorizer", "",
		"Trained vectorizer model file (default: vectorizer.yaml in the phishscan config directory, else untrained)")

	// Analyzer flags
	cmd.Flags().Bool("no-whois", false,
		"Skip WHOIS registration lookups")
	cmd.Flags().Bool("no-images", false,
		"Skip remote image fetching")

	return cmd
}

// datasetOptions holds the resolved dataset command flags.
type datasetOptions struct {
	cfg        *config.Config
	inputPath  string
	htmlDir    string
	label      int
	outputPath string

	// rate is the fetch rate limit in requests per second.
	// Zero disables limiting, so it lives outside Config validation.
	rate float64
}

// runDatasetCmd executes the dataset command.
func runDatasetCmd(cmd *cobra.Command, _ []string) error {
	opts, err := buildDatasetOptions(cmd)
	if err != nil {
		return err
	}

	if opts.inputPath == "" && opts.htmlDir == "" {
		return errors.New("either --input or --html-dir is required")
	}
	if opts.inputPath != "" && opts.htmlDir != "" {
		return errors.New("--input and --html-dir are mutually exclusive")
	}
	if opts.label != 0 && opts.label != 1 {
		return fmt.Errorf("invalid label %d (must be 0 or 1)", opts.label)
	}
	if opts.rate < 0 {
		return fmt.Errorf("invalid rate %v (must be >= 0)", opts.rate)
	}
	if err := opts.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := phlog.NewLogger(os.Stderr, opts.cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runDataset(ctx, opts, logger)
}

// buildDatasetOptions creates datasetOptions from cobra command flags.
func buildDatasetOptions(cmd *cobra.Command) (*datasetOptions, error) {
	cfg := config.NewConfig()

	var err error
	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.Workers, err = cmd.Flags().GetInt("workers")
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
	cfg.DisableWhois, err = cmd.Flags().GetBool("no-whois")
	if err != nil {
		return nil, err
	}
	cfg.DisableImageFetch, err = cmd.Flags().GetBool("no-images")
	if err != nil {
		return nil, err
	}
	cfg.DBDir, err = cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	if noDB {
		cfg.DBDir = ""
	}
	cfg.Verbose = getVerboseFlag(cmd)

	opts := &datasetOptions{cfg: cfg}

	opts.inputPath, err = cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}
	opts.htmlDir, err = cmd.Flags().GetString("html-dir")
	if err != nil {
		return nil, err
	}
	opts.label, err = cmd.Flags().GetInt("label")
	if err != nil {
		return nil, err
	}
	opts.outputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	opts.rate, err = cmd.Flags().GetFloat64("rate")
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// runDataset builds the dataset and writes the outputs.
func runDataset(ctx context.Context, opts *datasetOptions, logger *slog.Logger) error {
	engine, err := buildEngine(opts.cfg, logger)
	if err != nil {
		return err
	}

	client := fetch.NewClient(
		fetch.WithTimeout(opts.cfg.FetchTimeout),
		fetch.WithUserAgent(opts.cfg.UserAgent),
		fetch.WithMaxBodySize(opts.cfg.MaxBodySize),
	)

	// Rate limiting only matters when pages are fetched over the network.
	rate := opts.rate
	if opts.htmlDir != "" {
		rate = 0
	}

	builder := dataset.NewBuilder(engine,
		dataset.WithFetcher(client),
		dataset.WithWorkers(opts.cfg.Workers),
		dataset.WithRateLimit(rate),
		dataset.WithBuilderLogger(logger),
	)

	var reports []*dataset.LabeledReport
	if opts.htmlDir != "" {
		reports, err = builder.BuildFromHTMLDir(ctx, opts.htmlDir)
	} else {
		var inputs []dataset.LabeledURL
		inputs, err = dataset.ReadURLFile(opts.inputPath, opts.label)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.inputPath, err)
		}
		reports, err = builder.BuildFromURLs(ctx, inputs)
	}
	if err != nil {
		return err
	}

	logger.Info("dataset built", "records", len(reports))

	output, cleanup, err := openOutput(opts.outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := dataset.WriteCSV(output, engine.Schema(), reports); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if opts.cfg.DBDir != "" {
		if err := persistReports(ctx, opts.cfg.DBDir, reports, logger); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Wrote %d records\n", len(reports))
	return nil
}

// persistReports saves the labeled records to the SQLite feature store.
func persistReports(ctx context.Context, dbDir string, reports []*dataset.LabeledReport, logger *slog.Logger) error {
	store, err := dataset.OpenStore(dbDir, dataset.DefaultStoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open feature store: %w", err)
	}
	defer store.Close()

	saved, err := store.SaveAll(ctx, reports)
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	logger.Info("records persisted", "saved", saved, "path", store.Path())
	return nil
}
