package main

import (
	"crypto/tls"
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"activity-hub/internal/activity"
	"activity-hub/internal/config"
	"activity-hub/internal/db"
	"activity-hub/internal/events"
	"activity-hub/internal/handlers"
	"activity-hub/internal/services"
	"activity-hub/internal/sound"
	"activity-hub/internal/storage"
	"activity-hub/internal/view"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to config YAML")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Logging
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Log.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger

	// Initialize database
	if err := db.InitDatabase(cfg.Data.DBPath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// Initialize services
	store := storage.NewStore(db.DB)
	bus := events.NewBus()
	hub := services.NewHub(bus)
	go hub.Run()

	sounds := sound.NewManager(cfg.Data.SoundsDir)
	pageView := view.NewPageView(hub)

	controller := activity.NewController(pageView, bus, store, sounds)
	controller.SetRosterSource(cfg.Data.RosterPath)

	// Initialize handlers
	wsHandler := handlers.NewWebSocketHandler(hub, controller)
	rosterHandler := handlers.NewRosterHandler(cfg.Data.RosterPath)
	settingsHandler := handlers.NewSettingsHandler(store, bus)
	dataHandler := handlers.NewActivityDataHandler(store)
	soundHandler := handlers.NewSoundHandler(sounds)

	// Setup routes
	router := handlers.SetupRoutes(wsHandler, rosterHandler, settingsHandler, dataHandler, soundHandler)

	// Configure server
	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	// Configure TLS if enabled
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{
			MinVersion: getTLSVersion(cfg.TLS.MinVersion),
		}

		log.Info().
			Str("addr", server.Addr).
			Str("cert", cfg.TLS.CertFile).
			Str("min_version", cfg.TLS.MinVersion).
			Msg("starting HTTPS server")

		log.Fatal().Err(server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)).Msg("server stopped")
	} else {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		log.Warn().Msg("HTTP mode is not recommended for production")

		log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
	}
}

// getTLSVersion converts string version to tls.Version constant
func getTLSVersion(version string) uint16 {
	switch version {
	case "1.0":
		return tls.VersionTLS10
	case "1.1":
		return tls.VersionTLS11
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
