package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cityfix-client/internal/app"
	"cityfix-client/internal/config"
	"cityfix-client/internal/controllers"
	"cityfix-client/internal/gateway"
	"cityfix-client/internal/geo"
	"cityfix-client/internal/notify"
	"cityfix-client/internal/push"
	"cityfix-client/internal/router"
	"cityfix-client/internal/session"
	"cityfix-client/internal/state"
	"cityfix-client/internal/ui"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Core pieces: state store, gateway, session persistence
	store := state.NewStore()
	gw := gateway.New(cfg.API.BaseURL, cfg.Admin.Passphrase, cfg.API.APITimeout())
	sessions := session.NewStore(cfg.Session.Path)
	geocoder := geo.NewNominatim(cfg.Geo.BaseURL, cfg.Geo.UserAgent, cfg.Geo.SearchLimit)

	// Rendering surfaces and notifications
	console := ui.NewConsole(os.Stdout)
	notifier := notify.NewToastNotifier(console)
	surfaces := app.Surfaces{
		Feed:        console,
		Map:         console,
		Picker:      console,
		Leaderboard: console,
		Rewards:     console,
		Admin:       console,
		Identity:    console,
	}

	// Application coordinator and controllers
	a := app.New(store, gw, sessions, notifier, surfaces)
	reportCtl := controllers.NewReportController(gw, store, notifier, geocoder, cfg.Geo.SearchDebounce())
	authCtl := controllers.NewAuthController(gw, store, sessions, notifier, cfg.Admin.Passphrase, a.RenderIdentity)

	// Restore the persisted session before the first render
	a.RestoreSession(ctx)

	// Initial navigation for the startup fragment
	rt := router.New(a, console)
	rt.Navigate(ctx, cfg.UI.StartFragment)

	// Push channel keeps local state live from here on
	listener := push.NewListener(cfg.Push.URL, func(ev state.Event) {
		a.HandleEvent(ctx, ev)
	}, cfg.Push.ReconnectMin(), cfg.Push.ReconnectMax())
	go listener.Run(ctx)

	log.Info().
		Str("api", cfg.API.BaseURL).
		Str("push", cfg.Push.URL).
		Msg("CityFix client running")

	// Interactive command loop until EOF/quit or interrupt
	shell := &repl{app: a, router: rt, report: reportCtl, auth: authCtl, out: os.Stdout}
	done := make(chan struct{})
	go func() {
		shell.run(ctx, os.Stdin)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-done:
	}

	log.Info().Msg("Shutting down...")
	cancel()
	log.Info().Msg("Client exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
