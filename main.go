package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/gyokusei/nga-cli/domain"
	"github.com/gyokusei/nga-cli/infra/config"
	"github.com/gyokusei/nga-cli/infra/nga"
	"github.com/gyokusei/nga-cli/tui"
	"github.com/gyokusei/nga-cli/tui/browse"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}
	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// appEnv carries the wired environment into command actions. Everything is
// explicit; there is no package-global state below main.
type appEnv struct {
	store    *config.Store
	settings config.Settings
	diag     *nga.Recorder
	log      zerolog.Logger
}

// newClient builds the API client from the current settings. The API is
// https-only, so the https proxy wins when both are set.
func (e *appEnv) newClient() *nga.Client {
	return nga.NewClient(nga.Options{
		Cookie: e.settings.Cookie,
		Proxy:  proxyFor(e.settings),
		Diag:   e.diag,
		Logger: e.log.With().Str("component", "client").Logger(),
	})
}

func proxyFor(set config.Settings) string {
	if set.HTTPSProxy != "" {
		return set.HTTPSProxy
	}
	return set.HTTPProxy
}

func main() {
	var (
		env       = &appEnv{}
		configDir string
		logLevel  string
	)

	app := &cli.Command{
		Name:      "nga-cli",
		Usage:     "Browse NGA forums from the terminal",
		UsageText: "nga-cli [global options] [command]",
		Description: `Run 'nga-cli' with no arguments to open the interactive browser.
Run 'nga-cli config' first to set the login cookie and favorite boards.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config-dir",
				Usage:       "configuration directory",
				Sources:     cli.EnvVars("NGA_CLI_CONFIG_DIR"),
				Destination: &configDir,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("NGA_CLI_LOG_LEVEL"),
				Value:       "info",
				Destination: &logLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			store, err := config.NewStore(configDir)
			if err != nil {
				return ctx, err
			}
			settings, err := store.Load()
			if err != nil {
				return ctx, err
			}
			logger, err := setupLogger(logLevel, store.LogPath())
			if err != nil {
				return ctx, err
			}
			diag, err := nga.NewRecorder(store.Dir())
			if err != nil {
				return ctx, err
			}

			env.store = store
			env.settings = settings
			env.diag = diag
			env.log = logger
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'nga-cli --help' for usage", c.Args().First())
			}
			return runBrowse(ctx, env)
		},
	}

	app.Commands = append(app.Commands, configCmd(env), debugCmd(env))

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "nga-cli: %v\n", err)
		os.Exit(1)
	}
}

// runBrowse verifies the session cookie and starts the interactive browser.
func runBrowse(ctx context.Context, env *appEnv) error {
	if err := config.ValidateCookie(env.settings.Cookie); err != nil {
		return fmt.Errorf("not logged in (%v). Run 'nga-cli config' to set the cookie", err)
	}

	client := env.newClient()
	identity, err := client.VerifySession(ctx)
	if err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	if identity == nil {
		return fmt.Errorf("%w: the site rejected the cookie. Refresh it in your browser and run 'nga-cli config'",
			domain.ErrUnauthorized)
	}
	env.log.Info().Str("user", identity.Username).Int64("uid", identity.UID).Msg("session verified")
	fmt.Printf("Welcome, %s.\n", identity.Username)

	favorites := make([]browse.Favorite, 0, len(env.settings.Favorites))
	for _, name := range env.settings.FavoriteNames() {
		favorites = append(favorites, browse.Favorite{Name: name, FID: env.settings.Favorites[name]})
	}

	root := tui.NewApp(tui.Deps{
		Forum:          client,
		Identity:       identity,
		Favorites:      favorites,
		ShowSignatures: env.settings.ShowSignatures,
	})
	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// setupLogger opens a file-backed zerolog logger. The TUI owns the terminal,
// so nothing logs to stderr during normal runs.
func setupLogger(level, logFile string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("open log file: %w", err)
	}
	return zerolog.New(file).With().Timestamp().Logger().Level(parsed), nil
}
