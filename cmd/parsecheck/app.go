package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"parsecheck/internal/core/config"
	"parsecheck/internal/parse"
	"parsecheck/internal/source"
)

// maxConcurrentParses bounds the errgroup used for batch validation. Every
// file still gets its own session; sessions are never shared.
const maxConcurrentParses = 8

type App struct {
	Config *config.Config
	Parser *parse.Parser

	loader  *parse.GrammarLoader
	printer *printer
	printMu sync.Mutex
}

func NewApp(cfg *config.Config) (*App, error) {
	overrides := make(map[string]parse.LanguageOverride, len(cfg.Languages))
	for name, lang := range cfg.Languages {
		overrides[name] = parse.LanguageOverride{
			Enabled:    lang.Enabled,
			Extensions: lang.Extensions,
		}
	}

	registry, err := parse.BuildLanguageRegistry(overrides)
	if err != nil {
		return nil, err
	}
	loader, err := parse.NewGrammarLoaderWithRegistry(registry)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Parser:  parse.NewParserWithLimits(loader, cfg.Limits.MaxDiagnostics),
		loader:  loader,
		printer: newPrinter(os.Stdout),
	}, nil
}

// ScanDirectories walks paths and returns every file an enabled grammar
// claims, minus the configured excludes.
func (a *App) ScanDirectories(paths []string) ([]string, error) {
	dirGlobs, err := compileGlobs(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	fileGlobs, err := compileGlobs(a.Config.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}

	var files []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				if matchAny(dirGlobs, base) {
					return filepath.SkipDir
				}
				return nil
			}
			if matchAny(fileGlobs, base) {
				return nil
			}
			if a.loader.Detect(path) == "" {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}

// ValidateAll parses every file in its own session, up to
// maxConcurrentParses at a time, and returns the number of files rejected.
func (a *App) ValidateAll(ctx context.Context, files []string) int {
	var mu sync.Mutex
	failures := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentParses)

	for _, path := range files {
		g.Go(func() error {
			if err := a.ValidateFile(ctx, path); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; failures are counted instead.
	_ = g.Wait()

	slog.Info("validation finished", "files", len(files), "failures", failures)
	return failures
}

// ValidateFile parses one file and prints the outcome.
func (a *App) ValidateFile(ctx context.Context, path string) error {
	result, err := a.Parser.Parse(ctx, []source.Artifact{source.FromFile(path)}, path)
	if err != nil {
		a.printMu.Lock()
		defer a.printMu.Unlock()

		var pe *parse.ParseError
		if errors.As(err, &pe) {
			a.printer.parseFailure(pe)
		} else {
			a.printer.sessionFailure(path, err)
		}
		return err
	}
	defer result.Close()

	a.printMu.Lock()
	defer a.printMu.Unlock()
	a.printer.success(path, result)
	return nil
}

// Revalidate re-parses changed paths that an enabled grammar still claims.
func (a *App) Revalidate(ctx context.Context, paths []string) {
	for _, path := range paths {
		if a.loader.Detect(path) == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue // deleted between event and flush
		}
		if err := a.ValidateFile(ctx, path); err != nil {
			slog.Debug("revalidation failed", "path", path)
		}
	}
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}
	return false
}
