// Package live serves interactive editing sessions over websockets. Every
// connection owns a form and a simulation session; each accepted edit
// restarts the simulation and the newest summary is pushed back.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/orchestrators/simulation"
	"github.com/arychagov/w40k/internal/profiles"
	"github.com/arychagov/w40k/internal/publishers"
	"github.com/arychagov/w40k/internal/stats"
)

const (
	maxMessageSize = 4096
	sendBuffer     = 16
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	SimulationService simulation.Service
	// Publisher also receives every summary pushed to clients; optional
	Publisher publishers.Publisher
	Ordering  rules.Ordering
	// Trials per batch; zero uses the service default
	Trials int
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.SimulationService == nil {
		return errors.InvalidArgument("simulation service is required")
	}
	if c.Trials < 0 {
		return errors.InvalidArgument("trials must not be negative")
	}
	return nil
}

// Handler serves the live editing endpoints
type Handler struct {
	simulationService simulation.Service
	publisher         publishers.Publisher
	ordering          rules.Ordering
	trials            int
	upgrader          websocket.Upgrader
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		simulationService: cfg.SimulationService,
		publisher:         cfg.Publisher,
		ordering:          cfg.Ordering,
		trials:            cfg.Trials,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

// Router returns the HTTP routes
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.HandleFunc("/api/fields", h.fields).Methods(http.MethodGet)
	r.HandleFunc("/ws/session", h.session).Methods(http.MethodGet)
	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"fields": profiles.Paths()})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &connection{
		conn: conn,
		form: profiles.NewForm(),
		out:  make(chan ServerMessage, sendBuffer),
	}
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop()
	}()

	if err := h.serve(ctx, c); err != nil {
		slog.Error("Live session failed", "remote", r.RemoteAddr, "error", err)
		c.send(ctx, errorMessage("", err))
	}

	close(c.out)
	<-writerDone
	slog.Debug("Live session closed", "remote", r.RemoteAddr)
}

func (h *Handler) serve(ctx context.Context, c *connection) error {
	attacker, err := profiles.BuildAttacker(c.form.Attacker(), profiles.WithOrdering(h.ordering))
	if err != nil {
		return errors.Wrap(err, "failed to build default attacker")
	}
	defender, err := profiles.BuildDefender(c.form.Defender())
	if err != nil {
		return errors.Wrap(err, "failed to build default defender")
	}

	var publisher publishers.Publisher = publishers.Func(func(ctx context.Context, summary stats.Summary) error {
		return c.send(ctx, summaryMessage(summary))
	})
	if h.publisher != nil {
		publisher = publishers.Multi{publisher, h.publisher}
	}

	c.send(ctx, formMessage(c.form))

	session, err := simulation.NewSession(ctx, &simulation.SessionConfig{
		Service:   h.simulationService,
		Publisher: publisher,
		Attacker:  attacker,
		Defender:  defender,
		Ordering:  h.ordering,
		Trials:    h.trials,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("Websocket read failed", "error", err)
			}
			return nil
		}
		h.apply(ctx, c, session, msg)
	}
}

// apply handles one client message. Malformed messages are answered with an
// error; text that does not build a profile keeps the previous profile.
func (h *Handler) apply(ctx context.Context, c *connection, session *simulation.Session, msg ClientMessage) {
	var (
		side profiles.Side
		err  error
	)
	switch msg.Type {
	case TypeSet:
		side, err = c.form.Set(msg.Field, msg.Value)
	case TypeStep:
		side, err = c.form.Step(msg.Field, msg.Up)
	case TypeForm:
		c.send(ctx, formMessage(c.form))
		return
	default:
		err = errors.InvalidArgumentf("unknown message type %q", msg.Type)
	}
	if err != nil {
		c.send(ctx, errorMessage(msg.Field, err))
		return
	}

	c.send(ctx, formMessage(c.form))

	switch side {
	case profiles.SideAttacker:
		_ = session.UpdateAttacker(c.form.Attacker())
	case profiles.SideDefender:
		_ = session.UpdateDefender(c.form.Defender())
	}
}

type connection struct {
	conn *websocket.Conn
	form *profiles.Form
	out  chan ServerMessage
}

// send queues a message for the writer. It gives up when ctx is done.
func (c *connection) send(ctx context.Context, msg ServerMessage) error {
	select {
	case c.out <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeLoop is the only goroutine writing to the websocket. After a failed
// write it keeps draining so senders never block.
func (c *connection) writeLoop() {
	failed := false
	for msg := range c.out {
		if failed {
			continue
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			slog.Debug("Websocket write failed", "error", err)
			failed = true
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
