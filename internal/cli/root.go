// Package cli implements quizctl, the terminal quiz client.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizzer/internal/client"
	"github.com/saulo-duarte/quizzer/internal/config"
	"github.com/saulo-duarte/quizzer/internal/session"
)

// sessionTTL matches the lifetime of server-issued tokens.
const sessionTTL = 24 * time.Hour

type app struct {
	configPath string
	apiURL     string
	verbose    bool

	cfg     Config
	log     *logrus.Entry
	api     *client.Client
	session *session.Manager
	closers []func() error
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Play and manage quizzes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "path to YAML config")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api", "", "quiz API base URL (overrides config)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(NewRegisterCmd(a))
	cmd.AddCommand(NewLoginCmd(a))
	cmd.AddCommand(NewLogoutCmd(a))
	cmd.AddCommand(NewWhoamiCmd(a))
	cmd.AddCommand(NewPlayCmd(a))
	cmd.AddCommand(NewQuestionsCmd(a))
	cmd.AddCommand(NewScoresCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if env := os.Getenv("QUIZ_API_URL"); env != "" {
		cfg.APIURL = env
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	a.cfg = cfg

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	a.log = logrus.NewEntry(logger)

	a.api = client.New(cfg.APIURL,
		client.WithTimeout(Duration(cfg.HTTP.Timeout, client.DefaultTimeout)),
		client.WithLogger(a.log),
	)

	store, err := a.openStorage()
	if err != nil {
		return err
	}
	a.session = session.NewManager(store, a.api, session.WithLogger(a.log))
	return nil
}

func (a *app) openStorage() (session.Storage, error) {
	switch strings.ToLower(a.cfg.Storage.Driver) {
	case "", "file":
		if a.cfg.Storage.Encrypt {
			if len(os.Getenv("CRYPTO_KEY")) != 32 {
				return nil, fmt.Errorf("storage.encrypt requires a 32 byte CRYPTO_KEY")
			}
			config.InitCrypto()
		}
		return session.NewFileStorage(a.cfg.Storage.Path, a.cfg.Storage.Encrypt)
	case "redis":
		r := a.cfg.Storage.Redis
		rdb := redis.NewClient(&redis.Options{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
		})
		a.closers = append(a.closers, rdb.Close)
		return session.NewRedisStorage(rdb, r.Prefix, sessionTTL), nil
	case "memory":
		return session.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
	}
}

func (a *app) close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// requireSession restores and verifies the cached session before any
// authenticated call.
func (a *app) requireSession(cmd *cobra.Command) (string, error) {
	ok, err := a.session.Restore(cmd.Context())
	if err != nil {
		a.log.WithError(err).Debug("Session restore failed")
		return "", fmt.Errorf("session expired or invalid, please log in again: %w", err)
	}
	if !ok {
		return "", session.ErrNotAuthenticated
	}
	return a.session.RequireToken()
}
