// Package main provides the CLI entrypoint for wordtick.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordtick/internal/config"
	"github.com/verte-zerg/wordtick/internal/corpus"
	"github.com/verte-zerg/wordtick/internal/logging"
	"github.com/verte-zerg/wordtick/internal/puzzle"
	"github.com/verte-zerg/wordtick/internal/share"
	"github.com/verte-zerg/wordtick/internal/stats"
	"github.com/verte-zerg/wordtick/internal/store"
	"github.com/verte-zerg/wordtick/internal/telemetry"
	"github.com/verte-zerg/wordtick/internal/tui"
)

const (
	defaultPeriod        = "5m"
	defaultStatsLast     = 10
	telemetryEndpointEnv = "WORDTICK_TELEMETRY_ENDPOINT"
)

var (
	playPeriod string
	playDBPath string

	statsLast   int
	statsDBPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordtick",
		Short:         "Terminal word puzzle on a timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playPeriod, "period", defaultPeriod, "how long each puzzle stays active")
	rootCmd.Flags().StringVar(&playDBPath, "db", "", "path to the database file (default: XDG data dir)")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	// Optional .env next to the binary, for telemetry overrides in dev.
	_ = godotenv.Load()

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "period", &playPeriod, fileCfg.Game.Period)
	applyStringConfig(cmd, "db", &playDBPath, fileCfg.Game.DBPath)

	period, err := time.ParseDuration(playPeriod)
	if err != nil {
		return fmt.Errorf("invalid --period value: %w", err)
	}
	if period <= 0 {
		return fmt.Errorf("--period must be greater than 0")
	}

	corp, err := corpus.Load()
	if err != nil {
		return fmt.Errorf("failed to load word corpus: %w", err)
	}

	logger, logCloser := logging.Open(config.DefaultLogPath())
	if logCloser != nil {
		defer func() {
			if cerr := logCloser.Close(); cerr != nil {
				// Best-effort close for the log file.
				_ = cerr
			}
		}()
	}

	dbPath := playDBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	endpoint := os.Getenv(telemetryEndpointEnv)
	if endpoint == "" && fileCfg.Telemetry.Endpoint != nil {
		endpoint = *fileCfg.Telemetry.Endpoint
	}
	tel := telemetry.New(endpoint, st.InstallID(context.Background()), logger)

	sched := puzzle.NewScheduler(corp.Solutions(), puzzle.DefaultEpoch, period, nil)
	model := tui.NewModel(corp, sched, st, tel, share.ClipboardDeliverer{}, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", defaultStatsLast, "number of recent games to list")
	cmd.Flags().StringVar(&statsDBPath, "db", "", "path to the database file (default: XDG data dir)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &statsDBPath, fileCfg.Game.DBPath)

	dbPath := statsDBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	logger, logCloser := logging.Open(config.DefaultLogPath())
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	recent, err := st.RecentGames(ctx, statsLast)
	if err != nil {
		return fmt.Errorf("failed to load game history: %w", err)
	}
	return stats.RenderReport(cmd.OutOrStdout(), st.LoadStats(ctx), recent)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordtick configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# period = %q          # How long each puzzle stays active
# db-path = ""          # Database file path (default: XDG data dir)

[telemetry]
# endpoint = ""         # Analytics endpoint; empty disables telemetry
`, defaultPeriod)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
