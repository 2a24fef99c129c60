package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gustavkrist/bookmarks/internal/app"
	"github.com/gustavkrist/bookmarks/internal/bookmarks"
	"github.com/gustavkrist/bookmarks/internal/search"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const envPrefix = "BOOKMARK"

const (
	keyConfig       = "config"
	keyBookmarks    = "bookmarks"
	keyWidth        = "width"
	keyHeight       = "height"
	keyFooter       = "footer"
	keySearchDepth  = "search-depth"
	keySearchLimit  = "search-limit"
	keyRanker       = "ranker"
	keyWatch        = "watch"
	keyDebounce     = "debounce"
	keyEditor       = "editor"
	keyPreviewStyle = "preview-style"
	keyLogFile      = "log-file"
	keyTrace        = "trace"
)

const (
	defaultSearchDepth  = 4
	defaultDebounce     = 150 * time.Millisecond
	defaultEditor       = "vi"
	defaultPreviewStyle = "monokai"
)

// RegisterFlags adds every runtime flag to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, "", "path to a YAML config file")
	fs.StringP(keyBookmarks, "f", "", "path to the bookmark file (default ~/.bookmarks)")
	fs.Int(keyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(keyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(keyFooter, true, "show the key hint row")
	fs.Int(keySearchDepth, defaultSearchDepth, "directory levels listed before searching")
	fs.Int(keySearchLimit, search.MaxResults, "maximum number of search results")
	fs.String(keyRanker, search.RankerFuzzySearch, "search ranking: fuzzysearch or sahilm")
	fs.Bool(keyWatch, true, "reload when bookmarks or visible directories change")
	fs.Duration(keyDebounce, defaultDebounce, "delay before a burst of file changes triggers a reload")
	fs.String(keyEditor, "", "editor command for opening files (default $EDITOR)")
	fs.String(keyPreviewStyle, defaultPreviewStyle, "syntax highlighting style for previews")
	fs.String(keyLogFile, "", "path to the log file")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
}

// LoadArgs parses args with a fresh flag set; tests use it to exercise the
// same precedence rules as the CLI.
func LoadArgs(args []string) (Config, error) {
	fs := pflag.NewFlagSet("bookmarks", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, fs.Args())
}

// FromFlags resolves configuration from, in order of precedence, changed
// flags, BOOKMARK_* environment variables, the config file and defaults.
func FromFlags(fs *pflag.FlagSet, args []string) (Config, error) {
	return load(afero.NewOsFs(), fs, args)
}

func load(fsys afero.Fs, fs *pflag.FlagSet, args []string) (Config, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyBookmarks, "BOOKMARK_PATH", "BOOKMARK_BOOKMARKS"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv(keyEditor, "BOOKMARK_EDITOR", "VISUAL", "EDITOR"); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	v.SetDefault(keyBookmarks, bookmarks.DefaultFile)
	v.SetDefault(keyFooter, true)
	v.SetDefault(keySearchDepth, defaultSearchDepth)
	v.SetDefault(keySearchLimit, search.MaxResults)
	v.SetDefault(keyRanker, search.RankerFuzzySearch)
	v.SetDefault(keyWatch, true)
	v.SetDefault(keyDebounce, defaultDebounce)
	v.SetDefault(keyEditor, defaultEditor)
	v.SetDefault(keyPreviewStyle, defaultPreviewStyle)

	configFile, err := readConfigFile(v, fsys)
	if err != nil {
		return Config{}, err
	}

	bookmarkFile, err := homedir.Expand(v.GetString(keyBookmarks))
	if err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", keyBookmarks, err)
	}
	logFile, err := homedir.Expand(v.GetString(keyLogFile))
	if err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", keyLogFile, err)
	}

	cfg := Config{
		App: app.Config{
			BookmarkFile: bookmarkFile,
			Width:        v.GetInt(keyWidth),
			Height:       v.GetInt(keyHeight),
			ShowFooter:   v.GetBool(keyFooter),
			SearchDepth:  v.GetInt(keySearchDepth),
			SearchLimit:  v.GetInt(keySearchLimit),
			Ranker:       v.GetString(keyRanker),
			Watch:        v.GetBool(keyWatch),
			Debounce:     v.GetDuration(keyDebounce),
			Editor:       v.GetString(keyEditor),
			PreviewStyle: v.GetString(keyPreviewStyle),
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    v.GetBool(keyTrace),
		},
		ConfigFile: configFile,
		Args:       append([]string(nil), args...),
	}
	cfg.Flags = map[string]string{
		keyBookmarks:    cfg.App.BookmarkFile,
		keyWidth:        strconv.Itoa(cfg.App.Width),
		keyHeight:       strconv.Itoa(cfg.App.Height),
		keyFooter:       strconv.FormatBool(cfg.App.ShowFooter),
		keySearchDepth:  strconv.Itoa(cfg.App.SearchDepth),
		keySearchLimit:  strconv.Itoa(cfg.App.SearchLimit),
		keyRanker:       cfg.App.Ranker,
		keyWatch:        strconv.FormatBool(cfg.App.Watch),
		keyDebounce:     cfg.App.Debounce.String(),
		keyEditor:       cfg.App.Editor,
		keyPreviewStyle: cfg.App.PreviewStyle,
		keyLogFile:      cfg.Logging.FilePath,
		keyTrace:        strconv.FormatBool(cfg.Logging.Trace),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readConfigFile loads an explicit --config file, or the default location
// when it exists. It returns the path that was read.
func readConfigFile(v *viper.Viper, fsys afero.Fs) (string, error) {
	path := v.GetString(keyConfig)
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return "", nil
		}
		if _, err := fsys.Stat(path); err != nil {
			return "", nil
		}
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand config path: %w", err)
	}
	v.SetConfigFile(expanded)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config %s: %w", expanded, err)
	}
	return expanded, nil
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bookmarks", "config.yaml")
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookmarks", "config.yaml")
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.SearchDepth < 0 {
		errs = append(errs, fmt.Errorf("search-depth must be >= 0 (got %d)", cfg.App.SearchDepth))
	}
	if cfg.App.SearchLimit <= 0 {
		errs = append(errs, fmt.Errorf("search-limit must be > 0 (got %d)", cfg.App.SearchLimit))
	}
	if cfg.App.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must be >= 0 (got %s)", cfg.App.Debounce))
	}
	if _, err := search.RankerFor(cfg.App.Ranker); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(cfg.App.BookmarkFile) == "" {
		errs = append(errs, errors.New("bookmark file path is empty"))
	}
	return errors.Join(errs...)
}
