package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/zammadctl/config"
	"github.com/s0up4200/zammadctl/zammad"
)

// skipInit marks commands that run without a config file or API client
const skipInit = "skip-init"

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *zammad.Client

	// Global flags
	jsonOutput bool
	debugHTTP  bool
	assumeYes  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "zammadctl",
	Short: "A command line client for the Zammad helpdesk",
	Long: `zammadctl talks to the REST API of a Zammad helpdesk instance.

It lists, searches, creates and deletes users, tickets and ticket articles,
and shows the ticket states and priorities configured on the instance.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON in API format")
	rootCmd.PersistentFlags().BoolVar(&debugHTTP, "debug-http", false, "dump HTTP requests and responses (includes credentials)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, ok := cmd.Annotations[skipInit]; ok {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true}, os.Stderr)
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	client = newClient(cfg.Zammad, logger)

	logger.Debug().
		Str("url", cfg.Zammad.URL).
		Str("username", cfg.Zammad.Username).
		Msg("Zammad client initialized")

	return nil
}

func newClient(zc config.ZammadConfig, logger zerolog.Logger) *zammad.Client {
	opts := []zammad.Option{
		zammad.WithTimeout(zc.Timeout),
		zammad.WithDebug(debugHTTP),
	}
	if zc.UserAgent != "" {
		opts = append(opts, zammad.WithUserAgent(zc.UserAgent))
	}
	return zammad.NewClient(zc.URL, zc.Username, zc.Password, logger, opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Zammad",
	Long:  `Test the connection to your Zammad instance and show the authenticated user.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Testing connection to Zammad at %s...\n", cfg.Zammad.URL)

	me, err := zammad.GetAuthenticatedUser(ctx, client)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "Authenticated as %s (ID: %d)\n", me.FullName(), me.ID)

	states, err := zammad.ListStates(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to get ticket states: %w", err)
	}
	priorities, err := zammad.ListPriorities(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to get ticket priorities: %w", err)
	}

	fmt.Fprintf(out, "\nZammad Statistics:\n")
	fmt.Fprintf(out, "- Ticket states: %d\n", len(states))
	fmt.Fprintf(out, "- Ticket priorities: %d\n", len(priorities))

	return nil
}
