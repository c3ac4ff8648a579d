package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/config"
	"github.com/s0up4200/fotoctl/fotolia"
	"github.com/s0up4200/fotoctl/metrics"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *fotolia.Client
	collector *metrics.Collector
	language  fotolia.LanguageID

	// Command flags
	langFlag   string
	noLogin    bool
	rawOutput  bool
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fotoctl",
	Short: "A command line client for the Fotolia REST API",
	Long: `fotoctl talks to the Fotolia REST API: search the image bank, inspect
media, buy and download content, manage galleries and the shopping cart, or
serve the API over a local HTTP gateway.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "catalogue language, e.g. en_US or 2 (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noLogin, "no-login", false, "stay anonymous even when credentials are configured")
	rootCmd.PersistentFlags().BoolVar(&rawOutput, "raw", false, "print raw JSON payloads")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	code := cfg.Fotolia.Language
	if langFlag != "" {
		code = langFlag
	}
	var ok bool
	if language, ok = fotolia.ParseLanguage(code); !ok {
		return fmt.Errorf("unknown language: %s", code)
	}

	collector = metrics.New()

	client, err = fotolia.NewClient(cfg.Fotolia.APIKey, logger,
		fotolia.WithBaseURL(cfg.Fotolia.BaseURL),
		fotolia.WithVersion(cfg.Fotolia.Version),
		fotolia.WithTimeouts(cfg.Fotolia.ConnectTimeout, cfg.Fotolia.Timeout),
		fotolia.WithUserAgent(userAgent()),
		fotolia.WithRecorder(collector),
	)
	if err != nil {
		return fmt.Errorf("failed to create Fotolia client: %w", err)
	}

	if cfg.Fotolia.HasCredentials() && !noLogin {
		if err := client.LoginUser(cmd.Context(), cfg.Fotolia.Login, cfg.Fotolia.Password); err != nil {
			return err
		}
		logger.Info().Str("login", cfg.Fotolia.Login).Msg("Logged in")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
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
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colour only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printResponse writes a payload as indented JSON, or verbatim with --raw
func printResponse(resp *fotolia.Response) error {
	if rawOutput {
		_, err := fmt.Fprintln(os.Stdout, string(resp.Raw))
		return err
	}
	out, err := json.MarshalIndent(resp.Value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
