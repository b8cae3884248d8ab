package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wcbustats/internal/callbacks"
	"wcbustats/internal/db"
	"wcbustats/internal/figure"
	"wcbustats/internal/metrics"
	"wcbustats/internal/players"
	"wcbustats/internal/session"
	"wcbustats/internal/wshub"
)

// Page controls the chart callback reads from and writes to.
var (
	GraphFigure   = callbacks.Signal{ID: "my-graph", Property: "figure"}
	DivisionValue = callbacks.Signal{ID: "divisions-dropdown", Property: "value"}
	TeamValue     = callbacks.Signal{ID: "teams-dropdown", Property: "value"}
)

const sendBuffer = 16

type Options struct {
	Table           *players.Table
	Tmpl            *template.Template
	Title           string
	DefaultDivision string
	DefaultTeam     string
	SecretKey       string
	Logger          *zap.Logger
	Registry        *prometheus.Registry
}

type Server struct {
	Table     *players.Table
	Tmpl      *template.Template
	Callbacks *callbacks.Registry
	Hub       *wshub.Hub
	Sessions  *session.Signer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	DB        *db.DB // nil if no database configured

	title           string
	defaultDivision string
	defaultTeam     string
	gatherer        prometheus.Gatherer
	divisionOptions []players.Option
	teamOptions     []players.Option
}

// NewServer builds the option lists once and registers the chart callback.
func NewServer(opts Options) (*Server, error) {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		Table:           opts.Table,
		Tmpl:            opts.Tmpl,
		Callbacks:       callbacks.NewRegistry(),
		Hub:             wshub.NewHub(logger),
		Sessions:        session.NewSigner(opts.SecretKey),
		Metrics:         metrics.New(reg),
		Logger:          logger,
		title:           opts.Title,
		defaultDivision: opts.DefaultDivision,
		defaultTeam:     opts.DefaultTeam,
		gatherer:        reg,
		divisionOptions: opts.Table.DivisionOptions(),
		teamOptions:     opts.Table.TeamOptions(),
	}

	err := s.Callbacks.Register(GraphFigure, []callbacks.Signal{DivisionValue, TeamValue}, func(args []string) (any, error) {
		return figure.Build(s.Table, figure.Selection{Division: args[0], Team: args[1]}), nil
	})
	if err != nil {
		return nil, fmt.Errorf("registering chart callback: %w", err)
	}
	return s, nil
}

// dispatch runs the callback for output and counts the figure it produces.
func (s *Server) dispatch(transport string, output callbacks.Signal, state map[callbacks.Signal]string) (any, error) {
	v, err := s.Callbacks.Dispatch(output, state)
	if err != nil {
		return nil, err
	}
	if fig, ok := v.(figure.Figure); ok {
		s.Metrics.ObserveFigure(transport, fig.Empty())
	}
	return v, nil
}

func (s *Server) selectionState(sel figure.Selection) map[callbacks.Signal]string {
	return map[callbacks.Signal]string{
		DivisionValue: sel.Division,
		TeamValue:     sel.Team,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// pageCallback tells the browser which controls feed an output.
type pageCallback struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

type pageData struct {
	Title           string
	DivisionOptions []players.Option
	TeamOptions     []players.Option
	DefaultDivision string
	DefaultTeam     string
	Figure          any
	Graph           string
	Callbacks       []pageCallback
}

// pageCallbacks lists every registered callback with its inputs.
func (s *Server) pageCallbacks() []pageCallback {
	outputs := s.Callbacks.Outputs()
	cbs := make([]pageCallback, 0, len(outputs))
	for _, out := range outputs {
		inputs, ok := s.Callbacks.Inputs(out)
		if !ok {
			continue
		}
		names := make([]string, 0, len(inputs))
		for _, in := range inputs {
			names = append(names, in.String())
		}
		cbs = append(cbs, pageCallback{Output: out.String(), Inputs: names})
	}
	return cbs
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sessionID := s.Sessions.Ensure(w, r)

	sel := figure.Selection{Division: s.defaultDivision, Team: s.defaultTeam}
	fig, err := s.dispatch(metrics.TransportPage, GraphFigure, s.selectionState(sel))
	if err != nil {
		s.Logger.Error("building initial figure", zap.Error(err))
		http.Error(w, "Error building chart", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:           s.title,
		DivisionOptions: s.divisionOptions,
		TeamOptions:     s.teamOptions,
		DefaultDivision: s.defaultDivision,
		DefaultTeam:     s.defaultTeam,
		Figure:          fig,
		Graph:           GraphFigure.String(),
		Callbacks:       s.pageCallbacks(),
	}
	s.Logger.Debug("page served", zap.String("session", sessionID))
	if err := s.Tmpl.ExecuteTemplate(w, "dashboard", data); err != nil {
		s.Logger.Error("rendering dashboard", zap.Error(err))
		http.Error(w, "Error rendering dashboard", http.StatusInternalServerError)
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Divisions []players.Option `json:"divisions"`
		Teams     []players.Option `json:"teams"`
	}{s.divisionOptions, s.teamOptions}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		s.Logger.Warn("writing options", zap.Error(err))
	}
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := figure.Selection{Division: q.Get("division"), Team: q.Get("team")}

	fig, err := s.dispatch(metrics.TransportHTTP, GraphFigure, s.selectionState(sel))
	if err != nil {
		s.Logger.Error("building figure", zap.Error(err))
		http.Error(w, "Error building chart", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, fig); err != nil {
		s.Logger.Warn("writing figure", zap.Error(err))
	}
}

type callbackRequest struct {
	Output string            `json:"output"`
	Inputs map[string]string `json:"inputs"`
}

type callbackResponse struct {
	Output string `json:"output"`
	Value  any    `json:"value"`
}

// parseState turns wire names like "teams-dropdown.value" into signals.
func parseState(output string, inputs map[string]string) (callbacks.Signal, map[callbacks.Signal]string, error) {
	out, err := callbacks.ParseSignal(output)
	if err != nil {
		return callbacks.Signal{}, nil, err
	}
	state := make(map[callbacks.Signal]string, len(inputs))
	for name, value := range inputs {
		in, err := callbacks.ParseSignal(name)
		if err != nil {
			return callbacks.Signal{}, nil, err
		}
		state[in] = value
	}
	return out, state, nil
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	sessionID := s.Sessions.Ensure(w, r)

	var req callbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid callback request", http.StatusBadRequest)
		return
	}

	output, state, err := parseState(req.Output, req.Inputs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := s.dispatch(metrics.TransportCallback, output, state)
	if errors.Is(err, callbacks.ErrUnknownOutput) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.Logger.Error("callback failed", zap.String("output", req.Output), zap.Error(err))
		http.Error(w, "Callback failed", http.StatusInternalServerError)
		return
	}

	s.Logger.Debug("callback dispatched",
		zap.String("session", sessionID),
		zap.String("output", req.Output))
	if err := writeJSON(w, http.StatusOK, callbackResponse{Output: output.String(), Value: v}); err != nil {
		s.Logger.Warn("writing callback response", zap.Error(err))
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	sessionID := s.Sessions.Ensure(w, r)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	client := &wshub.Client{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
	}
	s.Hub.Register(client)
	s.Metrics.LiveSessions.Inc()
	defer func() {
		s.Hub.Unregister(client.ID)
		s.Metrics.LiveSessions.Dec()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go client.WritePump(ctx)

	log := s.Logger.With(zap.String("session", sessionID), zap.String("client", client.ID))
	log.Debug("live session opened")

	err = client.ReadPump(ctx, s.Hub, func(msg wshub.ClientMessage) wshub.ServerMessage {
		if msg.Type != wshub.TypeSelect {
			return wshub.ServerMessage{Type: wshub.TypeError, Error: "unknown message type"}
		}
		output, state, err := parseState(msg.Output, msg.Inputs)
		if err != nil {
			return wshub.ServerMessage{Type: wshub.TypeError, Output: msg.Output, Error: err.Error()}
		}
		v, err := s.dispatch(metrics.TransportWebsocket, output, state)
		if errors.Is(err, callbacks.ErrUnknownOutput) {
			return wshub.ServerMessage{Type: wshub.TypeError, Output: msg.Output, Error: err.Error()}
		}
		if err != nil {
			log.Error("callback failed", zap.String("output", msg.Output), zap.Error(err))
			return wshub.ServerMessage{Type: wshub.TypeError, Output: msg.Output, Error: "callback failed"}
		}
		return wshub.ServerMessage{Type: wshub.TypeUpdate, Output: output.String(), Value: v}
	})

	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		log.Debug("live session closed")
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Debug("live session ended", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			if err := writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db_error", "error": err.Error()}); err != nil {
				s.Logger.Warn("writing health", zap.Error(err))
			}
			return
		}
	}
	if err := writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "players": s.Table.Len(), "live": s.Hub.Count()}); err != nil {
		s.Logger.Warn("writing health", zap.Error(err))
	}
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}
