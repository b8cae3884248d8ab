package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"wcbustats/internal/config"
	"wcbustats/internal/db"
	"wcbustats/internal/players"
)

// Run loads the roster, builds the server and serves until the listener
// fails. Any error before serving begins aborts startup.
func Run(appCfg config.Config, logger *zap.Logger) error {
	table, database, err := loadRoster(appCfg, logger)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	tmpl, err := template.ParseFiles("templates/dashboard.html")
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := NewServer(Options{
		Table:           table,
		Tmpl:            tmpl,
		Title:           appCfg.Title,
		DefaultDivision: appCfg.DefaultDivision,
		DefaultTeam:     appCfg.DefaultTeam,
		SecretKey:       appCfg.SecretKey,
		Logger:          logger,
		Registry:        reg,
	})
	if err != nil {
		return err
	}
	srv.DB = database

	addr := "0.0.0.0:" + appCfg.Port
	logger.Info("server listening",
		zap.String("url", "http://localhost:"+appCfg.Port),
		zap.Int("players", table.Len()),
		zap.Int("teams", len(srv.teamOptions)),
		zap.Int("divisions", len(srv.divisionOptions)))
	return http.ListenAndServe(addr, srv.Routes())
}

// loadRoster reads the roster from Postgres when a database is configured
// and from the CSV file otherwise. The returned DB is nil without a database.
func loadRoster(appCfg config.Config, logger *zap.Logger) (*players.Table, *db.DB, error) {
	if appCfg.DatabaseURL == "" {
		table, err := players.LoadFile(appCfg.PlayersCSV)
		if err != nil {
			return nil, nil, fmt.Errorf("loading roster: %w", err)
		}
		logger.Info("roster loaded from file", zap.String("path", appCfg.PlayersCSV), zap.Int("rows", table.Len()))
		return table, nil, nil
	}

	database, err := db.Connect(appCfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting roster database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrating roster database: %w", err)
	}
	records, err := database.LoadRoster()
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("loading roster: %w", err)
	}
	logger.Info("roster loaded from database", zap.Int("rows", len(records)))
	return players.NewTable(records), database, nil
}

// Routes builds the HTTP handler for every dashboard endpoint.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /options", s.handleOptions)
	mux.HandleFunc("GET /figure", s.handleFigure)
	mux.HandleFunc("POST /callback", s.handleCallback)
	mux.HandleFunc("GET /ws", s.handleLive)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metricsHandler())
	return mux
}
