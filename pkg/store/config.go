package store

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultWorkspace is the database name used when the user never selected one.
const DefaultWorkspace = "tasksdbx2"

// Config resolves where workspaces live and which one is selected.
type Config interface {
	BasePath() string
	Workspace() string
	SetWorkspace(name string) error
}

// LoadConfig reads the .inbox config file (current directory, an override
// directory via INBOX_CONFIG_PATH, or $HOME) plus INBOX_* environment
// variables. Missing config files are fine; defaults apply.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.inbox.db")
	viper.SetDefault("workspace", DefaultWorkspace)
	viper.SetConfigName(".inbox") // .yaml is implicit
	viper.SetEnvPrefix("INBOX")
	viper.AutomaticEnv()

	if override := os.Getenv("INBOX_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	base, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand base path: %w", err)
	}

	return &fileConfig{
		path:      base,
		workspace: viper.GetString("workspace"),
	}, nil
}

type fileConfig struct {
	path      string
	workspace string
}

func (f *fileConfig) BasePath() string {
	return f.path
}

func (f *fileConfig) Workspace() string {
	if f.workspace == "" {
		return DefaultWorkspace
	}
	return f.workspace
}

// SetWorkspace persists the selected workspace name so the next store
// resolution opens it.
func (f *fileConfig) SetWorkspace(name string) error {
	f.workspace = name
	viper.Set("workspace", name)
	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	// No config file existed yet; create one in $HOME.
	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("store: resolve home: %w", err)
	}
	if err := viper.WriteConfigAs(filepath.Join(home, ".inbox.yaml")); err != nil {
		return fmt.Errorf("store: write config: %w", err)
	}
	return nil
}
