package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schemagen/schemagen/internal/branding"
	"github.com/schemagen/schemagen/internal/config"
	"github.com/schemagen/schemagen/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	rootDir    string
	configFile string
	logLevel   string
	noColor    bool
)

// Resolved by the root pre-run hook.
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

// skipConfig marks commands that must run without loading the project
// config (for example to repair an invalid file).
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Sanity schemas for a feature of a Next.js app: the schema
definition and barrel, and for documents and singletons the loader, query,
hook and context modules. Shared files are patched in place; files that
already exist are never duplicated.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootDir, "root", ".", "Project root directory")
	pf.StringVar(&configFile, "config", "", "Config file (default: <root>/"+branding.ConfigFile()+")")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	level, file := logLevel, ""
	if cmd.Annotations[skipConfig] == "" {
		c, err := config.Load(rootDir, configFile)
		if err != nil {
			return err
		}
		v := c.Viper()
		if err := v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
			return err
		}
		if err := v.BindPFlag(config.KeyNoColor, cmd.Flags().Lookup("no-color")); err != nil {
			return err
		}
		if c.NoColor() {
			color.NoColor = true
		}
		level, file = c.LogLevel(), c.LogFile()
		if file != "" && !filepath.IsAbs(file) {
			file = filepath.Join(rootDir, file)
		}
		cfg = c
	}
	if level == "" {
		level = "warn"
	}

	l, err := logging.New(logging.Options{
		Level:   level,
		File:    file,
		Console: cmd.ErrOrStderr(),
		NoColor: color.NoColor,
	})
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("root", rootDir),
		zap.String("config", configPath()),
		zap.Bool("config_found", cfg != nil && cfg.Found))
	return nil
}

// configPath returns the config file the current flags point at.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.FilePath(rootDir)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	}
	return err
}
