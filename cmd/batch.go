package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/series"
)

var batchCmd = &cobra.Command{
	Use:   "batch [patterns...]",
	Short: "Describe many series from input files",
	Long: `Reads input files (one comma-separated series per line, # for
comments) and generates a trend description for each. File arguments
may be glob patterns, including ** for recursive matching.

Calls are issued strictly sequentially: one request in flight at a
time. A failing line is reported and skipped; the batch continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("no-record", false, "skip recording runs in the history database")
	batchCmd.Flags().String("output", "", "write descriptions to a file instead of stdout")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := resolveInputFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files match %v", args)
	}

	var lines []batchLine
	for _, f := range files {
		fileLines, err := readSeriesLines(f)
		if err != nil {
			return err
		}
		lines = append(lines, fileLines...)
	}
	if len(lines) == 0 {
		return fmt.Errorf("no series found in %d input file(s)", len(files))
	}

	describer, err := createDescriberFromConfig(cfg)
	if err != nil {
		return err
	}

	noRecord, _ := cmd.Flags().GetBool("no-record")
	if !noRecord && cfg.HistoryDB != "" {
		database, err := db.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()
		describer = describer.WithRecorder(history.NewStore(database))
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	bar := progressbar.NewOptions(len(lines),
		progressbar.OptionSetDescription("Describing series"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	ctx := context.Background()
	var failed int
	for i, line := range lines {
		res, err := describer.Describe(ctx, line.series)
		if err != nil && res == nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s:%d: %v\n", line.file, line.lineNo, err)
		} else {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s:%d: warning: %v\n", line.file, line.lineNo, err)
			}
			fmt.Fprintf(out, "%s\t%s\n", line.series.String(), res.Description)
		}
		_ = bar.Set(i + 1)
	}
	_ = bar.Finish()

	if failed > 0 {
		return fmt.Errorf("%d of %d series failed", failed, len(lines))
	}
	return nil
}

type batchLine struct {
	file   string
	lineNo int
	series series.Series
}

// resolveInputFiles expands glob patterns (supporting **) into a
// sorted, de-duplicated file list. A pattern with no glob characters
// is taken as a literal path so missing files error clearly.
func resolveInputFiles(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("input file %s: %w", pattern, err)
			}
			if !seen[pattern] {
				seen[pattern] = true
				files = append(files, pattern)
			}
			continue
		}

		base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
		matches, err := doublestar.Glob(os.DirFS(base), rest)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			full := filepath.Join(base, m)
			if !seen[full] {
				seen[full] = true
				files = append(files, full)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// readSeriesLines parses one series per non-empty, non-comment line.
func readSeriesLines(path string) ([]batchLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []batchLine
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		s, err := series.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		lines = append(lines, batchLine{file: path, lineNo: lineNo, series: s})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
