package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"

	// Storage backend names accepted in config.
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

var ErrBadStorage = errors.New("config: unknown storage backend")

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	AddSubtask string `toml:"add_subtask"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	ClearDone  string `toml:"clear_done"`
	Notes      string `toml:"notes"`
	PrevDay    string `toml:"prev_day"`
	NextDay    string `toml:"next_day"`
	Today      string `toml:"today"`
	TasksView  string `toml:"tasks_view"`
	Calendar   string `toml:"calendar_view"`
	Charts     string `toml:"charts_view"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	ToggleHelp string `toml:"toggle_help"`
}

type Config struct {
	DataDir string `toml:"data_dir"`
	Storage string `toml:"storage"`
	Keys    Keymap `toml:"keys"`
}

// LoadOrCreate reads the config at path, writing the defaults there
// first when no file exists yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	switch cfg.Storage {
	case StorageFile, StorageSQLite:
	case "":
		cfg.Storage = StorageFile
	default:
		return cfg, fmt.Errorf("%w: %q", ErrBadStorage, cfg.Storage)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultConfigPath is the config location when none is given on the
// command line.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), DefaultConfigFileName)
}

// DefaultDataDir places state under the user's local share directory,
// falling back to a dotdir in the working directory when no home
// directory is resolvable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".studytrack"
	}
	return filepath.Join(home, ".local", "share", "studytrack")
}

// Default is the built-in configuration, what LoadOrCreate writes on
// first run.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		DataDir: DefaultDataDir(),
		Storage: StorageFile,
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			AddSubtask: "s",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			ClearDone:  "d",
			Notes:      "enter",
			PrevDay:    "h",
			NextDay:    "l",
			Today:      "t",
			TasksView:  "1",
			Calendar:   "2",
			Charts:     "3",
			Confirm:    "enter",
			Cancel:     "esc",
			ToggleHelp: "?",
		},
	}
}
