package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/htmldoc"
	"github.com/phishscan/phishscan/internal/vectorizer"
	"github.com/spf13/cobra"
)

// NewVectorizerCmd creates the vectorizer command group.
func NewVectorizerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectorizer",
		Short: "Manage the text vectorizer model",
	}
	cmd.AddCommand(NewVectorizerFitCmd())
	return cmd
}

// NewVectorizerFitCmd creates the vectorizer fit command.
func NewVectorizerFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Train a text vectorizer from saved HTML pages",
		Long: `Fit builds a TF-IDF vocabulary from a directory of saved HTML pages
and writes the trained model to a YAML file.

The scan and dataset commands pick the model up automatically when it
is written to the phishscan config directory, or explicitly via their
--vectorizer flag.

Examples:
  # Train from saved pages and install as the default model
  phishscan vectorizer fit --html-dir ./pages

  # Train a smaller model to a custom location
  phishscan vectorizer fit --html-dir ./pages --dim 10 --output model.yaml`,
		RunE: runVectorizerFitCmd,
	}

	cmd.Flags().String("html-dir", "",
		"Directory of saved HTML pages to train on (required)")
	cmd.Flags().Int("dim", config.DefaultVectorDim,
		"Vocabulary size and output vector dimension")
	cmd.Flags().StringP("output", "o", defaultVectorizerPath(),
		"Path for the trained model file")

	return cmd
}

// runVectorizerFitCmd executes the vectorizer fit command.
func runVectorizerFitCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("html-dir")
	if err != nil {
		return err
	}
	dim, err := cmd.Flags().GetInt("dim")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if dir == "" {
		return fmt.Errorf("--html-dir is required")
	}
	if dim <= 0 {
		return fmt.Errorf("invalid dim %d (must be > 0)", dim)
	}

	docs, err := collectDocuments(dir)
	if err != nil {
		return err
	}

	model := vectorizer.NewDefault(dim)
	if err := model.Fit(docs); err != nil {
		return fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	if parent := filepath.Dir(output); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := model.Save(output); err != nil {
		return fmt.Errorf("failed to save vectorizer: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Trained %d-term vectorizer from %d pages: %s\n",
		model.Dim(), len(docs), output)
	return nil
}

// collectDocuments reads every saved HTML page in dir and returns the
// visible text of each, in file name order.
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".html" || ext == ".htm" {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no HTML pages found in %s", dir)
	}
	sort.Strings(names)

	docs := make([]string, 0, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		docs = append(docs, htmldoc.Parse(string(raw)).Text)
	}
	return docs, nil
}
