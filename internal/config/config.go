// Package config loads the tokenization pipeline's configuration file: a
// TOML document with Main, Folders, Language and Config tables, parsed
// with pelletier/go-toml/v2.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	pipelineerrors "github.com/sourcerercc/tokenpipe/internal/errors"
	"github.com/sourcerercc/tokenpipe/internal/langprofile"
)

// Main holds the top-level run parameters ("Main" section).
type Main struct {
	NProcesses       int    `toml:"n_processes"`
	ProjectsBatch    int    `toml:"projects_batch"`
	FileProjectsList string `toml:"file_projects_list"`
}

// Folders holds the three output directory paths ("Folders/Files"
// section).
type Folders struct {
	StatsFileFolder       string `toml:"path_stats_file_folder"`
	BookkeepingProjFolder string `toml:"path_bookkeeping_proj_folder"`
	TokensFileFolder      string `toml:"path_tokens_file_folder"`
}

// Language holds the raw language-profile fields ("Language" section)
// before they are compiled into a *langprofile.Profile.
type Language struct {
	Separators      []string `toml:"separators"`
	CommentInline   string   `toml:"comment_inline"`
	CommentOpenTag  string   `toml:"comment_open_tag"`
	CommentCloseTag string   `toml:"comment_close_tag"`
	FileExtensions  []string `toml:"file_extensions"`
}

// RunConfig holds the two id-seeding fields ("Config" section). InitProjID
// doubles as both a default value and a display-id flag -- a quirk of the
// original corpus format worth preserving rather than flattening away.
type RunConfig struct {
	// InitFileID seeds every worker's starting base_file_id.
	InitFileID int64 `toml:"init_file_id"`
	// InitProjID is both the default project id and the decimal prefix
	// glued in front of every positional project id when building a
	// DisplayProjectID (model.NewDisplayProjectID).
	InitProjID int64 `toml:"init_proj_id"`
}

// Config is the fully parsed configuration file plus the compiled
// language profile.
type Config struct {
	Main     Main      `toml:"Main"`
	Folders  Folders   `toml:"Folders"`
	Language Language  `toml:"Language"`
	Config   RunConfig `toml:"Config"`

	// Profile is built from Language once loading succeeds; nil until
	// Load populates it.
	Profile *langprofile.Profile `toml:"-"`
}

// Load reads and parses path, then validates and compiles it. Any
// failure here is fatal on startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipelineerrors.NewConfigError(path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, pipelineerrors.NewConfigError(path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Profile = langprofile.New(
		cfg.Language.Separators,
		cfg.Language.CommentInline,
		cfg.Language.CommentOpenTag,
		cfg.Language.CommentCloseTag,
		cfg.Language.FileExtensions,
	)

	return &cfg, nil
}

// validate reports the first missing/invalid required field as a
// ConfigError. It does not attempt to be exhaustive in one pass -- a
// configuration problem is fatal either way, so reporting every problem
// at once buys nothing.
func (c *Config) validate() error {
	switch {
	case c.Main.NProcesses <= 0:
		return pipelineerrors.NewConfigError("Main.n_processes", errMustBePositive)
	case c.Main.ProjectsBatch <= 0:
		return pipelineerrors.NewConfigError("Main.projects_batch", errMustBePositive)
	case c.Main.FileProjectsList == "":
		return pipelineerrors.NewConfigError("Main.file_projects_list", errRequired)
	case c.Folders.StatsFileFolder == "":
		return pipelineerrors.NewConfigError("Folders.path_stats_file_folder", errRequired)
	case c.Folders.BookkeepingProjFolder == "":
		return pipelineerrors.NewConfigError("Folders.path_bookkeeping_proj_folder", errRequired)
	case c.Folders.TokensFileFolder == "":
		return pipelineerrors.NewConfigError("Folders.path_tokens_file_folder", errRequired)
	case len(c.Language.FileExtensions) == 0:
		return pipelineerrors.NewConfigError("Language.file_extensions", errRequired)
	default:
		return nil
	}
}

var (
	errRequired       = configErr("value is required")
	errMustBePositive = configErr("value must be positive")
)

type configErr string

func (e configErr) Error() string { return string(e) }
