package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/cards"
	"github.com/cardforge/oracle-engine/internal/events"
	"github.com/cardforge/oracle-engine/internal/parser"
)

// Server serves the WebSocket API and relays engine bus events to
// connected clients.
type Server struct {
	hub  *Hub
	bus  *events.Bus
	repo *cards.Repository
	log  *zap.Logger

	httpServer *http.Server
	busHandle  int
}

// New wires the server to the event bus and card repository. repo may
// be nil, in which case card lookups answer with an error message.
func New(address string, bus *events.Bus, repo *cards.Repository, log *zap.Logger) *Server {
	s := &Server{
		hub:  NewHub(log),
		bus:  bus,
		repo: repo,
		log:  log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.httpServer = &http.Server{Addr: address, Handler: mux}

	s.busHandle = bus.Subscribe(func(event events.Event) {
		s.hub.Broadcast(Message{Type: "event", Data: event})
	})
	return s
}

// Start runs the hub and HTTP listener until the context is canceled,
// then shuts down gracefully within the timeout.
func (s *Server) Start(ctx context.Context, shutdownTimeout time.Duration) error {
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("websocket server listening", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.bus.Unsubscribe(s.busHandle)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, 256)}
	s.hub.register <- client

	go client.writePump()
	go client.readPump(s.hub, s.handleMessage)
}

func (s *Server) handleMessage(client *Client, msg Message) {
	switch msg.Type {
	case "parse":
		tree := parser.CompileText(msg.Text)
		client.reply(s.log, Message{Type: "effect_tree", Text: msg.Text, Data: tree})

	case "card":
		if s.repo == nil {
			client.reply(s.log, Message{Type: "error", Text: "card lookups are not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		meta, err := s.repo.GetCard(ctx, msg.Name)
		if err != nil {
			client.reply(s.log, Message{Type: "error", Name: msg.Name, Text: err.Error()})
			return
		}
		client.reply(s.log, Message{Type: "card", Name: meta.Name, Data: meta})

	default:
		s.log.Debug("unknown message type", zap.String("type", msg.Type))
		client.reply(s.log, Message{Type: "error", Text: "unknown message type: " + msg.Type})
	}
}
