// Package cli implements the shadow CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/app"
	"github.com/easeaico/shadow/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	configPath string
	userFlag   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "shadow",
	Short: "Journaling assistant with a personal semantic memory",
	Long:  "Shadow classifies journal entries, remembers the ones that matter and answers questions grounded in them.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $SHADOW_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User id (default: $SHADOW_USER)")
}

func userID() string {
	if userFlag != "" {
		return userFlag
	}
	if env := os.Getenv("SHADOW_USER"); env != "" {
		return env
	}
	exitErr("user", fmt.Errorf("--user or SHADOW_USER is required"))
	return ""
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	SetupLogging(cfg.LogLevel)
	return cfg
}

func openApp(cmd *cobra.Command) *app.App {
	cfg := loadConfig()
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		exitErr("init", err)
	}
	return a
}

// SetupLogging installs the default slog handler at the given level.
func SetupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode output", err)
	}
	fmt.Println(string(b))
}

// readContent takes positional args first, then piped stdin.
func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(b)
	}
	return ""
}
