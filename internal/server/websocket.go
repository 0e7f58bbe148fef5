package server

import (
	"context"
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/service"
	"ctchen222/tictactoe-ai/internal/validator"
	"ctchen222/tictactoe-ai/pkg/proto"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// handleWebSocket upgrades the request and plays the game named by
// ?game_id=, or a new one when it is missing or unknown.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
	))
	defer span.End()

	state, err := s.resolveGame(ctx, c.Query("game_id"))
	if err != nil {
		span.RecordError(err)
		e := response.FromError(err)
		response.ErrorResponse(c, e.Code, e.Extras)
		return
	}
	span.SetAttributes(attribute.String("game.id", state.ID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	slog.InfoContext(ctx, "websocket connected", "game.id", state.ID)
	sess := newSession(conn, s.gameService, state.ID)
	go sess.writePump()
	sess.send <- proto.NewUpdateMessage(state.ID, state.Game, -1)
	sess.readPump(ctx)
	slog.InfoContext(ctx, "websocket disconnected", "game.id", state.ID)
}

func (s *Server) resolveGame(ctx context.Context, id string) (*service.GameState, error) {
	if id != "" {
		state, err := s.gameService.Get(ctx, id)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, err
		}
	}
	return s.gameService.Create(ctx)
}

// session serves one websocket client bound to one game. All writes go
// through send so that only writePump touches the connection for writing.
type session struct {
	conn        *websocket.Conn
	gameService service.GameService
	gameID      string
	send        chan *proto.ServerToClientMessage
	done        chan struct{}
}

func newSession(conn *websocket.Conn, gameService service.GameService, gameID string) *session {
	return &session{
		conn:        conn,
		gameService: gameService,
		gameID:      gameID,
		send:        make(chan *proto.ServerToClientMessage, 8),
		done:        make(chan struct{}),
	}
}

// readPump handles client messages until the connection fails, then closes
// send so writePump can finish.
func (sess *session) readPump(ctx context.Context) {
	defer close(sess.send)
	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "websocket read failed", "game.id", sess.gameID, "error", err)
			}
			return
		}
		select {
		case sess.send <- sess.handleMessage(ctx, raw):
		case <-sess.done:
			return
		}
	}
}

// handleMessage dispatches one raw client message and returns the reply.
func (sess *session) handleMessage(ctx context.Context, raw []byte) *proto.ServerToClientMessage {
	ctx, span := tracer.Start(ctx, "server.handleMessage", trace.WithAttributes(
		attribute.String("game.id", sess.gameID),
	))
	defer span.End()

	var msg proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return proto.NewErrorMessage("malformed message")
	}
	if err := validator.ValidateClientMessage(&msg); err != nil {
		slog.WarnContext(ctx, "invalid websocket message", "game.id", sess.gameID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return proto.NewErrorMessage("invalid message")
	}
	span.SetAttributes(attribute.String("message.type", msg.Type))

	var (
		state *service.GameState
		err   error
	)
	switch msg.Type {
	case proto.TypeMove:
		state, err = sess.gameService.Move(ctx, sess.gameID, *msg.Position)
	case proto.TypeReset:
		state, err = sess.gameService.Reset(ctx, sess.gameID)
	}
	if err != nil {
		span.RecordError(err)
		return proto.NewErrorMessage(response.FromError(err).Extras)
	}
	return proto.NewUpdateMessage(state.ID, state.Game, state.AIMove)
}

func (sess *session) writePump() {
	conn := sess.conn
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(sess.done)
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sess.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				slog.Warn("websocket write failed", "game.id", sess.gameID, "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
