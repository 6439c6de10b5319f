package cssvariant

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/cssvariant/internal/inject"
	"github.com/yacobolo/cssvariant/internal/report"
)

// DefaultIgnoreFile is the gitignore-syntax file consulted for paths to
// leave alone. Build output is usually gitignored, so .gitignore itself is
// not used.
const DefaultIgnoreFile = ".cssvariantignore"

// BatchConfig configures ConsolidateFiles.
type BatchConfig struct {
	// Includes are doublestar glob patterns of files to consolidate.
	Includes []string
	// BaseDir anchors ignore patterns and the layout under OutDir.
	// Defaults to the working directory.
	BaseDir string
	// IgnoreFile defaults to DefaultIgnoreFile in BaseDir. A missing file
	// is not an error.
	IgnoreFile string
	// OutDir receives the rewritten files. Empty rewrites in place.
	OutDir string

	Protocol Protocol
	Delivery Delivery
	Anchor   Anchor
	// SourceMap writes <file>.map next to every rewritten file.
	SourceMap bool

	// Workers bounds parallelism. Defaults to the number of CPUs.
	Workers int
	// FailFast stops scheduling files after the first failure.
	FailFast bool
	// DryRun consolidates without writing anything.
	DryRun bool
	Logger *zap.Logger
}

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files consolidated (after filtering)
	FilesSkipped    int // Files skipped by the ignore file or as source maps
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	OutPath string
	Markers int
	Changed bool
	Key     string
	// CSSBytes is the size of the merged payload.
	CSSBytes int
}

// BatchResult is the outcome of ConsolidateFiles.
type BatchResult struct {
	Files  []FileResult
	Issues []Issue
	Stats  ScanStats
	// BaseDir is the absolute directory reported paths are relative to.
	BaseDir string
}

// Markers returns the number of markers merged across all files.
func (r *BatchResult) Markers() int {
	n := 0
	for _, f := range r.Files {
		n += f.Markers
	}
	return n
}

// Changed returns the number of rewritten files.
func (r *BatchResult) Changed() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

type fileOutcome struct {
	done   bool
	result FileResult
	issue  *Issue
	err    error
}

// ConsolidateFiles consolidates every file matched by cfg.Includes. Each
// file is an independent compiled unit. Per-file failures are reported as
// issues and combined into the returned error; the result is returned even
// when the error is non-nil.
func ConsolidateFiles(cfg BatchConfig) (*BatchResult, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	log := cfg.Logger

	gi := loadIgnoreFile(cfg.IgnoreFile)
	files, stats, err := expandGlobPatterns(cfg.Includes, cfg.BaseDir, gi)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered files",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	outcomes := make([]fileOutcome, len(files))
	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	var failed atomic.Bool

	for i, path := range files {
		sem <- struct{}{}
		if cfg.FailFast && failed.Load() {
			<-sem
			break
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcomes[i] = consolidateFile(path, cfg)
			if outcomes[i].err != nil {
				failed.Store(true)
			}
		}(i, path)
	}
	wg.Wait()

	result := &BatchResult{Stats: stats, BaseDir: cfg.BaseDir}
	var errs error
	for _, o := range outcomes {
		if !o.done {
			continue
		}
		if o.issue != nil {
			result.Issues = append(result.Issues, *o.issue)
		}
		if o.err != nil {
			if cfg.FailFast {
				return result, o.err
			}
			errs = multierr.Append(errs, o.err)
			continue
		}
		result.Files = append(result.Files, o.result)
	}

	log.Info("consolidation finished",
		zap.Int("files", len(result.Files)),
		zap.Int("changed", result.Changed()),
		zap.Int("markers", result.Markers()),
		zap.Int("issues", len(result.Issues)))

	return result, errs
}

func (cfg BatchConfig) withDefaults() (BatchConfig, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return cfg, fmt.Errorf("resolve base dir: %w", err)
	}
	cfg.BaseDir = base
	if cfg.IgnoreFile == "" {
		cfg.IgnoreFile = filepath.Join(base, DefaultIgnoreFile)
	}
	if len(cfg.Includes) == 0 {
		return cfg, errors.New("no include patterns configured")
	}
	return cfg, nil
}

// loadIgnoreFile compiles the ignore file at path.
// A missing or unreadable file disables ignoring.
func loadIgnoreFile(path string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile determines if a file should be excluded from consolidation
//
// Two-layer filtering:
// 1. Pattern check (fast): skip source maps matched by broad globs
// 2. Ignore file check: only for paths inside baseDir
func shouldSkipFile(path, baseDir string, gi *ignore.GitIgnore) bool {
	if strings.HasSuffix(path, ".map") {
		return true
	}
	if gi == nil {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}

// expandGlobPatterns expands glob patterns to file paths and tracks
// statistics
func expandGlobPatterns(patterns []string, baseDir string, gi *ignore.GitIgnore) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(baseDir, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("expand %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match, baseDir, gi) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// consolidateFile rewrites one file and writes the result.
func consolidateFile(path string, cfg BatchConfig) fileOutcome {
	log := cfg.Logger.With(zap.String("file", path))

	// #nosec G304 - path comes from configured glob patterns
	content, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{done: true, err: fmt.Errorf("read file: %w", err)}
	}

	outPath := path
	if cfg.OutDir != "" {
		rel, err := filepath.Rel(cfg.BaseDir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(path)
		}
		outPath = filepath.Join(cfg.OutDir, rel)
	}

	res, err := inject.Consolidate(string(content), inject.Options{
		Protocol:  cfg.Protocol,
		Delivery:  cfg.Delivery,
		Anchor:    cfg.Anchor,
		SourceMap: cfg.SourceMap,
		Filename:  filepath.Base(path),
		Logger:    log,
	})
	if err != nil {
		return fileOutcome{
			done:  true,
			issue: issueFor(displayPath(path, cfg.BaseDir), string(content), err),
			err:   fmt.Errorf("%s: %w", path, err),
		}
	}

	result := FileResult{
		Path:     path,
		OutPath:  outPath,
		Markers:  len(res.Markers),
		Changed:  res.Changed,
		Key:      res.Key,
		CSSBytes: len(res.CSS),
	}
	if cfg.DryRun || (!res.Changed && outPath == path) {
		return fileOutcome{done: true, result: result}
	}

	code := res.Code
	if res.Map != nil {
		mapJSON, err := res.Map.JSON()
		if err != nil {
			return fileOutcome{done: true, err: fmt.Errorf("%s: encode source map: %w", path, err)}
		}
		if err := writeFile(outPath+".map", mapJSON); err != nil {
			return fileOutcome{done: true, err: err}
		}
		code += "\n//# sourceMappingURL=" + filepath.Base(outPath) + ".map\n"
	}
	if err := writeFile(outPath, []byte(code)); err != nil {
		return fileOutcome{done: true, err: err}
	}

	log.Debug("wrote file", zap.String("out", outPath), zap.Int("markers", result.Markers))
	return fileOutcome{done: true, result: result}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// issueFor converts a consolidation error into an issue when it carries a
// position.
func issueFor(path, content string, err error) *Issue {
	offset := -1
	var malformed *inject.MalformedMarkerError
	var decode *inject.MarkerDecodeError
	switch {
	case errors.As(err, &malformed):
		offset = malformed.Offset
	case errors.As(err, &decode):
		offset = decode.Offset
	default:
		return nil
	}

	pos, line := report.PositionAt(path, content, offset)
	return &Issue{
		Pass:        report.PassConsolidate,
		Text:        err.Error(),
		Severity:    report.SeverityError,
		SourceLines: []string{line},
		Pos:         pos,
	}
}

// displayPath returns path relative to baseDir when it lies inside it.
func displayPath(path, baseDir string) string {
	if baseDir == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
