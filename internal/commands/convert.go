package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/izvod-dev/izvod/internal/config"
	"github.com/izvod-dev/izvod/internal/convert"
	"github.com/izvod-dev/izvod/internal/logger"
	"github.com/izvod-dev/izvod/internal/parse"
	"github.com/izvod-dev/izvod/internal/runlog"
)

func newConvertCommand() *cobra.Command {
	var specPaths []string
	var format string
	var outDir string
	var configPath string

	cmd := &cobra.Command{
		Use:   "convert <statement>...",
		Short: "Convert statements into Minimax import files",
		Long: `Convert reads bank statement files (PDF, text, or zip archives of text),
expands courier settlements against the given specifications, and writes one
Minimax import file per statement.

Arguments may be files or directories; directories are scanned for statement
files at the top level.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !convert.ValidFormat(format) {
				return fmt.Errorf("unknown output format %q (want %s or %s)", format, convert.FormatXLSX, convert.FormatXML)
			}
			return runConvert(cmd, args, specPaths, format, outDir, configPath)
		},
	}

	cmd.Flags().StringArrayVar(&specPaths, "spec", nil, "courier specification file (repeatable)")
	cmd.Flags().StringVar(&format, "format", convert.FormatXLSX, "output format: xlsx or xml")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default "+config.Filename+")")

	return cmd
}

// statementExts lists the file types a directory scan picks up.
var statementExts = map[string]bool{".pdf": true, ".txt": true, ".zip": true}

// collectDocuments reads the named files, scanning one level deep when a
// path is a directory.
func collectDocuments(paths []string) ([]convert.Document, error) {
	var docs []convert.Document
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			doc, err := readDocument(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() || !statementExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			doc, err := readDocument(filepath.Join(p, e.Name()))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func readDocument(path string) (convert.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return convert.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return convert.Document{Name: filepath.Base(path), Data: data}, nil
}

// loadConfig loads the named config file, or izvod.yaml from the working
// directory, or falls back to the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.Filename); err == nil {
		return config.Load(config.Filename)
	}
	return config.Default(""), nil
}

func runConvert(cmd *cobra.Command, statementPaths, specPaths []string, format, outDir, configPath string) error {
	log := logger.New()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	docs, err := collectDocuments(statementPaths)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no statement files found")
	}
	specDocs, err := collectDocuments(specPaths)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	parser := &parse.Gemini{Model: cfg.Model.Name, MaxRetries: cfg.Model.MaxRetries}
	conv := convert.New(parser, cfg)

	specs := conv.LoadSpecifications(specDocs)
	if len(specDocs) > 0 && len(specs) == 0 {
		log.Warn().Msg("no usable courier specifications found")
	}

	runID, items := conv.Batch(cmd.Context(), docs, specs, cfg.Workers)

	var entries []runlog.Entry
	failed := 0
	for _, item := range items {
		entry := runlog.Entry{
			Timestamp: time.Now().UTC(),
			RunID:     runID,
			File:      item.File,
			Format:    format,
			Status:    "ok",
		}

		if item.Err == nil {
			entry.Transactions = len(item.Result.Transactions)
			entry.Expanded = item.Result.Expanded
			item.Err = writeOutput(conv, item, format, outDir)
		}
		if item.Err != nil {
			failed++
			entry.Status = "error"
			entry.Error = item.Err.Error()
			log.Error().Str("run_id", runID).Str("file", item.File).Err(item.Err).Msg("conversion failed")
			entries = append(entries, entry)
			continue
		}

		for _, ev := range item.Result.Events {
			evLog := log.Warn()
			if ev.Kind == convert.EventExpanded {
				evLog = log.Info()
			}
			evLog.Str("file", item.File).Str("kind", string(ev.Kind)).Msg(ev.Message)
		}
		log.Info().Str("run_id", runID).Str("file", item.File).
			Int("transactions", entry.Transactions).Bool("expanded", entry.Expanded).
			Str("output", convert.OutputName(item.File, format)).
			Msg("converted")
		entries = append(entries, entry)
	}

	if err := runlog.Append(".", entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write convert log: %v\n", err)
	}

	fmt.Printf("Converted %d of %d statements (run %s)\n", len(items)-failed, len(items), runID)
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(items))
	}
	return nil
}

func writeOutput(conv *convert.Converter, item convert.BatchItem, format, outDir string) error {
	content, err := conv.Render(item.Result, format)
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, convert.OutputName(item.File, format))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
