// Copyright 2025 Christopher O'Connell
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uprockcom/orderdesk/pkg/confirm"
	"github.com/uprockcom/orderdesk/pkg/logging"
	"github.com/uprockcom/orderdesk/pkg/order"
	"github.com/uprockcom/orderdesk/pkg/tui"
)

var (
	cfgFile string
	config  *Config
)

var rootCmd = &cobra.Command{
	Use:   "orderdesk",
	Short: "Manage orders from the terminal",
	Long: `orderdesk keeps a small order book and lets you move orders through
pending, processing, shipped and delivered.

Run without arguments to open the interactive dashboard. Destructive and
status-changing actions always ask for confirmation first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}
		config = cfg
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.orderdesk/config.yml)")
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openStore(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("orderdesk started", "driver", config.Store.Driver, "path", config.Store.Path)
	return tui.Run(cmd.Context(), tui.Options{
		Store:    store,
		Logger:   logger,
		Labels:   config.UI.Labels.confirmLabels(),
		AlertTTL: time.Duration(config.UI.AlertSeconds) * time.Second,
	})
}

// Config is the on-disk configuration.
type Config struct {
	Store StoreConfig `mapstructure:"store" yaml:"store"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	UI    UIConfig    `mapstructure:"ui" yaml:"ui"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" yaml:"path"`
}

type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

type UIConfig struct {
	Labels       LabelsConfig `mapstructure:"labels" yaml:"labels"`
	AlertSeconds int          `mapstructure:"alert_seconds" yaml:"alert_seconds"`
}

type LabelsConfig struct {
	Confirm string `mapstructure:"confirm" yaml:"confirm"`
	Cancel  string `mapstructure:"cancel" yaml:"cancel"`
	Busy    string `mapstructure:"busy" yaml:"busy"`
}

func (l LabelsConfig) confirmLabels() confirm.Labels {
	return confirm.Labels{Confirm: l.Confirm, Cancel: l.Cancel, Busy: l.Busy}
}

// configDir returns ~/.orderdesk.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".orderdesk"
	}
	return filepath.Join(home, ".orderdesk")
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), "config.yml")
}

func setDefaults(v *viper.Viper) {
	labels := confirm.DefaultLabels()
	v.SetDefault("store.driver", order.DriverYAML)
	v.SetDefault("store.path", filepath.Join(configDir(), "orders.yml"))
	v.SetDefault("log.file", filepath.Join(configDir(), "orderdesk.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.labels.confirm", labels.Confirm)
	v.SetDefault("ui.labels.cancel", labels.Cancel)
	v.SetDefault("ui.labels.busy", labels.Busy)
	v.SetDefault("ui.alert_seconds", 4)
}

// loadConfig reads path (or the default location) over the built-in
// defaults. A missing file is not an error. ORDERDESK_* environment
// variables override both, e.g. ORDERDESK_STORE_DRIVER=sqlite.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix("ORDERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = defaultConfigPath()
	}
	path = expandPath(path)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	if cfg.UI.AlertSeconds <= 0 {
		cfg.UI.AlertSeconds = 4
	}
	return &cfg, nil
}

// expandPath replaces a leading ~ with the home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func newLogger() (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(config.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(config.Log.File, level)
}

func openStore(logger *slog.Logger) (order.Store, error) {
	store, err := order.Open(config.Store.Driver, config.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open order store: %w", err)
	}
	return store, nil
}

// withStore runs fn against a freshly opened store, logging to the configured file.
func withStore(fn func(order.Store) error) error {
	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openStore(logger)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
