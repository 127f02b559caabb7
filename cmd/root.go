package cmd

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/ratelimit"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/qbitctl/config"
	"github.com/s0up4200/qbitctl/httputils"
	"github.com/s0up4200/qbitctl/qbittorrent"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	qbClient *qbittorrent.Client

	// Command flags
	dryRun bool
	yes    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qbitctl",
	Short: "Manage a remote qBittorrent instance from the command line",
	Long: `qbitctl talks to the qBittorrent WebUI API to list, add and remove
torrents, edit trackers and manage tags, with expression-based
filtering of listings.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
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
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompts")
}

// initializeApp loads the configuration, builds the logger and logs in to the
// qBittorrent WebUI.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	qbClient, err = newQBittorrentClient()
	if err != nil {
		return err
	}

	if err := qbClient.Login(cmd.Context()); err != nil {
		return fmt.Errorf("failed to log in to qBittorrent: %w", err)
	}

	return nil
}

// newQBittorrentClient builds the client from config, wiring in the retrying
// transport when retries are configured.
func newQBittorrentClient() (*qbittorrent.Client, error) {
	timeout := time.Duration(cfg.QBittorrent.Timeout) * time.Second

	opts := []qbittorrent.Option{
		qbittorrent.WithTimeout(timeout),
	}
	if cfg.QBittorrent.BasicUser != "" {
		opts = append(opts, qbittorrent.WithBasicAuth(cfg.QBittorrent.BasicUser, cfg.QBittorrent.BasicPass))
	}

	// With retries configured, skip-verify has to travel into the retry
	// client's own transport; the returned client's Transport is the retrying
	// round tripper, which WithTLSSkipVerify cannot reach into.
	if cfg.QBittorrent.RetryMax > 0 {
		var rl ratelimit.Limiter
		if cfg.QBittorrent.RateLimit > 0 {
			rl = ratelimit.New(cfg.QBittorrent.RateLimit)
		}
		var tlsConfig *tls.Config
		if cfg.QBittorrent.TLSSkipVerify {
			tlsConfig = &tls.Config{InsecureSkipVerify: true}
		}
		opts = append(opts, qbittorrent.WithHTTPClient(
			httputils.NewRetryableHTTPClient(timeout, cfg.QBittorrent.RetryMax, rl, tlsConfig)))
	} else if cfg.QBittorrent.TLSSkipVerify {
		opts = append(opts, qbittorrent.WithTLSSkipVerify())
	}

	client, err := qbittorrent.NewClient(
		cfg.QBittorrent.URL,
		cfg.QBittorrent.Username,
		cfg.QBittorrent.Password,
		logger,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create qBittorrent client: %w", err)
	}

	return client, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var writers []io.Writer

	if cfg.Format == "json" || !isatty.IsTerminal(os.Stderr.Fd()) {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color,
		})
	}

	// Rotating log file when a path is configured
	if cfg.Path != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

// confirm asks the user to confirm an action unless --yes was given.
func confirm(prompt string) bool {
	if yes || !cfg.Safety.ConfirmDelete {
		return true
	}

	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
