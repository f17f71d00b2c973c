package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-saju/internal/config"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{}
	defer a.close()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// app carries the global flags and the resolved settings shared by every command.
type app struct {
	configPath    string
	debug         bool
	converterMode string
	converterURL  string
	cache         bool

	settings  config.Settings
	logCloser io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               config.AppCommand,
		Short:             config.CmdDescRoot,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, config.FlagConfig, config.DefaultConfigPath(), config.FlagDescConfig)
	flags.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.StringVar(&a.converterMode, config.FlagConverter, config.ConverterModeLocal, config.FlagDescConverter)
	flags.StringVar(&a.converterURL, config.FlagConverterURL, "", config.FlagDescConverterURL)
	flags.BoolVar(&a.cache, config.FlagCache, false, config.FlagDescCache)

	rootCmd.AddCommand(newComputeCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newTokenCmd(a))
	rootCmd.AddCommand(newCacheCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup initializes logging and resolves settings: defaults, then the TOML file,
// then explicitly set flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logCloser = setupLogging(a.debug, cmd.Name() == config.CmdServe)

	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(config.FlagConverter) {
		settings.ConverterMode = a.converterMode
	}
	if cmd.Flags().Changed(config.FlagConverterURL) {
		settings.ConverterURL = a.converterURL
	}
	if cmd.Flags().Changed(config.FlagCache) {
		settings.Cache = a.cache
	}
	a.settings = settings
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
	}
}

// overrideString copies a command flag into dst when the user set it.
func overrideString(cmd *cobra.Command, name string, dst *string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetString(name); err == nil {
		*dst = v
	}
}

func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetInt(name); err == nil {
		*dst = v
	}
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
		config.Commit,
		config.Date,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// logFileFlags returns the open flags for the log file. A server restart
// resets the log to bound its growth.
func logFileFlags(truncate bool) int {
	if truncate {
		return os.O_TRUNC | os.O_CREATE | os.O_WRONLY
	}
	return os.O_APPEND | os.O_CREATE | os.O_WRONLY
}

// setupLogging configures the default slog logger. Logs go to stderr so that
// command output on stdout stays machine readable. Only the long-running
// server truncates the shared log file; one-shot commands append to it.
func setupLogging(debugMode, truncate bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stderr.
	writers = append(writers, os.Stderr)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		f, err := os.OpenFile(logPath, logFileFlags(truncate), config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
