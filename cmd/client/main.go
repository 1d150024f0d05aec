package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/client"
	"github.com/yourusername/termchat/internal/config"
	"github.com/yourusername/termchat/internal/logging"
)

var (
	configPath string
	serverAddr string
	tickRate   time.Duration
	keepOpen   bool
	selfLabel  string
	logFile    string
	logLevel   string

	forceInit bool
)

// rootCmd connects to the server and runs the chat screen
var rootCmd = &cobra.Command{
	Use:   "client",
	Short: "termchat - terminal chat client",
	Long: `termchat connects to a line-based chat server and shows a scrollable
message history above an input box.

Enter sends, Up/Down (or the mouse wheel) move through history, Esc quits.
Typing /quit also leaves the chat.`,
	SilenceUsage: true,
	RunE:         runChat,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the client configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  initConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  showConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	addChatFlags(rootCmd)

	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// addChatFlags registers the flags that override config settings.
func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&serverAddr, "server", "s", "", "Server address: host:port, tcp://host:port or ws(s):// URL")
	cmd.Flags().DurationVar(&tickRate, "tick", 0, "Redraw interval when idle (default 250ms)")
	cmd.Flags().BoolVar(&keepOpen, "keep-open", false, "Keep the chat open after the server disconnects")
	cmd.Flags().StringVarP(&selfLabel, "name", "n", "", "Label for your own messages (default \"Me\")")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file path, empty disables logging")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.Address = serverAddr
	}
	if flags.Changed("tick") {
		cfg.UI.TickRate = tickRate.String()
	}
	if flags.Changed("keep-open") {
		cfg.UI.ExitOnDisconnect = !keepOpen
	}
	if flags.Changed("name") {
		cfg.UI.SelfLabel = selfLabel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := client.NewSession(cfg, logger)
	err = session.Run(ctx)

	if netErr := session.NetworkErr(); netErr != nil {
		fmt.Fprintf(os.Stderr, "Network error: %v\n", netErr)
	}

	var connErr *client.ConnectError
	switch {
	case errors.As(err, &connErr):
		fmt.Printf("Could not connect to server: %v. Make sure the server is running.\n", connErr.Err)
		return nil
	case err != nil:
		logger.Error("Session failed", zap.String("session", session.ID()), zap.Error(err))
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !forceInit {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", configPath)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
