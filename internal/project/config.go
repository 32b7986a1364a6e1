package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"docnorm/internal/docstring"
	"docnorm/internal/rewrite"
)

var (
	ErrEmptyCanonical   = errors.New("headers.canonical must not be empty")
	ErrAliasIsCanonical = errors.New("headers.aliases must not contain the canonical header")
	ErrNegativeJobs     = errors.New("run.jobs must be >= 0")
	ErrNoExtensions     = errors.New("files.extensions must not be empty")
)

// Config is the decoded docnorm.toml.
type Config struct {
	Files   FilesConfig   `toml:"files"`
	Rules   RulesConfig   `toml:"rules"`
	Headers HeadersConfig `toml:"headers"`
	Run     RunConfig     `toml:"run"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type FilesConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

type RulesConfig struct {
	RenameHeader      bool `toml:"rename_header"`
	CollapseUnderline bool `toml:"collapse_underline"`
	BlankBeforeHeader bool `toml:"blank_before_header"`
	BlankBeforeCode   bool `toml:"blank_before_code"`
}

type HeadersConfig struct {
	Canonical string   `toml:"canonical"`
	Aliases   []string `toml:"aliases"`
}

type RunConfig struct {
	Jobs     int    `toml:"jobs"`
	Strategy string `toml:"strategy"`
	Cache    bool   `toml:"cache"`
}

// Default returns the configuration used when no docnorm.toml exists.
func Default() Config {
	opts := docstring.DefaultOptions()
	return Config{
		Files: FilesConfig{
			Extensions: []string{".py", ".pyi"},
			Exclude:    []string{".git", "__pycache__", ".venv", "venv", ".tox", "node_modules"},
		},
		Rules: RulesConfig{
			RenameHeader:      opts.RenameHeader,
			CollapseUnderline: opts.CollapseUnderline,
			BlankBeforeHeader: opts.BlankBeforeHeader,
			BlankBeforeCode:   opts.BlankBeforeCode,
		},
		Headers: HeadersConfig{
			Canonical: opts.Canonical,
			Aliases:   slices.Clone(opts.Aliases),
		},
		Run: RunConfig{
			Strategy: rewrite.StrategySpan.String(),
			Cache:    true,
		},
	}
}

// Load decodes path on top of the defaults. Keys that are absent keep their
// default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	// явно заданный пустой список исключений не сливаем с умолчаниями
	if meta.IsDefined("files", "exclude") && cfg.Files.Exclude == nil {
		cfg.Files.Exclude = []string{}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest docnorm.toml above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the cross-field constraints of the config.
func (c *Config) Validate() error {
	c.Headers.Canonical = strings.TrimSpace(c.Headers.Canonical)
	if c.Headers.Canonical == "" {
		return ErrEmptyCanonical
	}
	for i, alias := range c.Headers.Aliases {
		alias = strings.TrimSpace(alias)
		if alias == c.Headers.Canonical {
			return fmt.Errorf("%w: %q", ErrAliasIsCanonical, alias)
		}
		if alias == "" {
			return fmt.Errorf("headers.aliases[%d] is empty", i)
		}
		c.Headers.Aliases[i] = alias
	}
	if len(c.Files.Extensions) == 0 {
		return ErrNoExtensions
	}
	for i, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Files.Extensions[i] = "." + ext
		}
	}
	if c.Run.Jobs < 0 {
		return ErrNegativeJobs
	}
	if _, err := rewrite.ParseStrategy(c.Run.Strategy); err != nil {
		return fmt.Errorf("run.strategy: %w", err)
	}
	return nil
}

// Strategy returns the parsed run.strategy. Validate has already accepted it.
func (c Config) Strategy() rewrite.Strategy {
	s, _ := rewrite.ParseStrategy(c.Run.Strategy)
	return s
}

// DocOptions converts the rule and header sections into normalizer options.
func (c Config) DocOptions() docstring.Options {
	return docstring.Options{
		RenameHeader:      c.Rules.RenameHeader,
		CollapseUnderline: c.Rules.CollapseUnderline,
		BlankBeforeHeader: c.Rules.BlankBeforeHeader,
		BlankBeforeCode:   c.Rules.BlankBeforeCode,
		Canonical:         c.Headers.Canonical,
		Aliases:           slices.Clone(c.Headers.Aliases),
	}
}

// HasExtension reports whether path carries one of the configured extensions.
func (c Config) HasExtension(path string) bool {
	return slices.Contains(c.Files.Extensions, filepath.Ext(path))
}

// Excluded reports whether a directory or file name matches an exclude
// pattern. Patterns use filepath.Match syntax against the base name.
func (c Config) Excluded(name string) bool {
	base := filepath.Base(name)
	for _, pat := range c.Files.Exclude {
		if ok, err := filepath.Match(pat, base); err == nil && ok {
			return true
		}
	}
	return false
}
