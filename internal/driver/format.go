package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"docnorm/internal/docstring"
	"docnorm/internal/logx"
	"docnorm/internal/observ"
	"docnorm/internal/pipeline"
	"docnorm/internal/project"
	"docnorm/internal/source"
	"docnorm/internal/trace"
)

// ErrNoSourceFiles is returned when the given paths contain no file with a
// configured extension.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Config    project.Config
	Check     bool
	Stdout    bool
	Jobs      int // 0 means GOMAXPROCS
	MaxErrors uint
	Cache     *Cache                // nil disables caching
	Progress  pipeline.ProgressSink // optional
	Timer     *observ.Timer         // optional, pass-level phases
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path       string
	Changed    bool
	Cached     bool
	Err        error
	Formatted  []byte // original encoding restored; set in Stdout mode
	Docstrings int
	Edits      []DocEdit
}

// FormatPaths formats provided files or directories (recursively collecting
// files with the configured extensions). When opts.Check is true, files are
// not modified; Changed indicates whether formatting would update the file
// contents. When opts.Stdout is true, formatted content is returned in the
// results without touching files on disk. Per-file failures land in
// FormatResult.Err; the returned error is reserved for collection failures
// and cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)
	inflight := trace.InflightFrom(ctx)

	collectPhase := opts.Timer.Begin(observ.PhaseCollect)
	collectSpan := trace.Begin(tracer, trace.ScopePass, "collect", parent)
	files, err := CollectSourceFiles(ctx, paths, opts.Config)
	collectSpan.Count(trace.CountFiles, len(files)).End("")
	opts.Timer.End(collectPhase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	for _, path := range files {
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Status: pipeline.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	normalizer := docstring.NewNormalizer(opts.Config.DocOptions())
	cfgDigest := opts.Config.Digest()

	formatPhase := opts.Timer.Begin(observ.PhaseFormat)
	formatSpan := trace.Begin(tracer, trace.ScopePass, "format", parent).
		Count(trace.CountFiles, len(files)).
		Count(trace.CountJobs, jobs)

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := &fileWorker{
				opts:       opts,
				normalizer: normalizer,
				cfgDigest:  cfgDigest,
				tracer:     tracer,
				inflight:   inflight,
				parent:     formatSpan.ID(),
			}
			// каждый воркер пишет только в свой слот
			results[i] = w.run(gctx, path)
			return nil
		})
	}
	waitErr := g.Wait()

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	formatSpan.Count(trace.CountChanged, changed).End("")
	opts.Timer.End(formatPhase, fmt.Sprintf("%d changed", changed))

	if waitErr != nil {
		return results, waitErr
	}
	return results, nil
}

type fileWorker struct {
	opts       FormatOptions
	normalizer *docstring.Normalizer
	cfgDigest  project.Digest
	tracer     trace.Tracer
	inflight   *trace.Inflight
	parent     uint64

	// текущая стадия файла для observ.Timer
	stage   pipeline.Stage
	stageAt time.Time
}

func (w *fileWorker) run(ctx context.Context, path string) (result FormatResult) {
	log := logx.FromContext(ctx)
	started := time.Now()
	span := trace.BeginFile(w.tracer, path, w.parent)
	w.inflight.Enter(path)
	result.Path = path

	defer func() {
		status := pipeline.StatusDone
		detail := "unchanged"
		switch {
		case result.Err != nil:
			status, detail = pipeline.StatusError, "error"
		case result.Cached:
			status, detail = pipeline.StatusCached, "cached"
		case result.Changed:
			status, detail = pipeline.StatusChanged, "changed"
		}
		w.closeStage()
		w.inflight.Leave(path)
		span.Count(trace.CountDocstrings, result.Docstrings).
			Count(trace.CountChanged, len(result.Edits)).
			End(detail)
		pipeline.Emit(w.opts.Progress, pipeline.Event{
			File:    path,
			Status:  status,
			Err:     result.Err,
			Elapsed: time.Since(started),
		})
	}()

	w.progress(path, pipeline.StageRead)
	// #nosec G304 -- path comes from CollectSourceFiles
	raw, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		log.Error().Err(err).Str("path", path).Msg("read failed")
		return result
	}

	key := CacheKey(raw, w.cfgDigest)
	var entry CacheEntry
	if hit, cacheErr := w.opts.Cache.Get(key, &entry); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("path", path).Msg("cache read failed")
	} else if hit {
		log.Debug().Str("path", path).Msg("cache hit")
		result.Cached = true
		result.Docstrings = entry.Docstrings
		if w.opts.Stdout {
			result.Formatted = raw
		}
		return result
	}

	fileSet := source.NewFileSet()
	fileID := fileSet.AddNormalized(path, raw)
	res, err := FormatSource(fileSet, fileID, SourceOptions{
		Normalizer: w.normalizer,
		Strategy:   w.opts.Config.Strategy(),
		MaxErrors:  w.opts.MaxErrors,
		onStage:    func(st pipeline.Stage) { w.progress(path, st) },
	})
	if err != nil {
		result.Err = err
		log.Debug().Err(err).Str("path", path).Msg("parse failed")
		return result
	}
	result.Docstrings = res.Docstrings
	result.Edits = res.Edits
	result.Changed = res.Changed
	for _, e := range res.Edits {
		trace.Point(w.tracer, trace.ScopeDocstring, "docstring", fmt.Sprintf("%s %s at %d:%d", e.Owner, e.Name, e.Pos.Line, e.Pos.Col), span.ID())
	}

	formatted := raw
	if res.Changed {
		formatted = res.Raw
	}

	switch {
	case w.opts.Check:
	case w.opts.Stdout:
		result.Formatted = formatted
	case res.Changed:
		w.progress(path, pipeline.StageWrite)
		if err := WriteFile(path, formatted); err != nil {
			result.Err = err
			result.Changed = false
			log.Error().Err(err).Str("path", path).Msg("write failed")
			return result
		}
		log.Info().Str("path", path).Int("docstrings", len(res.Edits)).Msg("rewritten")
	}

	// в кэш попадает только текст, который уже нормализован
	cleanKey := key
	if res.Changed {
		if w.opts.Check || w.opts.Stdout {
			return result
		}
		cleanKey = CacheKey(formatted, w.cfgDigest)
	}
	if err := w.opts.Cache.Put(cleanKey, &CacheEntry{Path: path, Docstrings: res.Docstrings}); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cache write failed")
	}
	return result
}

func (w *fileWorker) progress(path string, stage pipeline.Stage) {
	w.closeStage()
	w.stage, w.stageAt = stage, time.Now()
	pipeline.Emit(w.opts.Progress, pipeline.Event{File: path, Stage: stage, Status: pipeline.StatusWorking})
}

// closeStage adds the time spent in the current stage to opts.Timer.
func (w *fileWorker) closeStage() {
	if w.stage == "" {
		return
	}
	w.opts.Timer.Track(string(w.stage), time.Since(w.stageAt))
	w.stage = ""
}

// WriteFile replaces path with content, keeping the file mode.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode.Perm())
}

// CollectSourceFiles expands paths into a sorted, deduplicated file list.
// Directories are walked recursively, skipping excluded names; files named
// explicitly are kept when they carry a configured extension.
func CollectSourceFiles(ctx context.Context, paths []string, cfg project.Config) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					if path != p && cfg.Excluded(path) {
						return filepath.SkipDir
					}
					return nil
				}
				if cfg.HasExtension(path) && !cfg.Excluded(path) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if cfg.HasExtension(p) {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}
