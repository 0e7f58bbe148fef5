package server

import (
	"bytes"
	"context"
	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/db"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/service"
	"ctchen222/tictactoe-ai/pkg/proto"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	svc := service.NewGameService(
		repository.NewMemoryGameRepository(),
		bot.NewCalculator(bot.NewDefaultEngine()),
		repository.NewResultRepository(pool),
	)
	ts := httptest.NewServer(NewServer(svc, time.Hour).Handler())
	t.Cleanup(ts.Close)
	return ts
}

type gamePayload struct {
	ID     string            `json:"id"`
	Board  []game.PlayerMark `json:"board"`
	Status game.Status       `json:"status"`
	Winner game.PlayerMark   `json:"winner"`
	Next   game.PlayerMark   `json:"next"`
	Moves  int               `json:"moves"`
	AIMove int               `json:"ai_move"`
}

func postJSON(t *testing.T, url, body string) (int, gamePayload) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Success bool        `json:"success"`
		Extras  gamePayload `json:"extras"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.StatusCode < 300 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env.Extras
}

func TestServer_PlayAgainstEngineOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	code, created := postJSON(t, ts.URL+"/api/games", "")
	require.Equal(t, http.StatusCreated, code)

	moveURL := ts.URL + "/api/games/" + created.ID + "/move"
	steps := []struct {
		human, ai int
	}{
		{human: 0, ai: 4},
		{human: 1, ai: 2},
		{human: 3, ai: 6},
	}
	var state gamePayload
	for _, step := range steps {
		code, state = postJSON(t, moveURL, `{"position":`+strconv.Itoa(step.human)+`}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, step.ai, state.AIMove)
	}
	assert.Equal(t, game.StatusWon, state.Status)
	assert.Equal(t, game.AI, state.Winner)
	assert.Empty(t, state.Next)

	code, _ = postJSON(t, moveURL, `{"position":5}`)
	assert.Equal(t, http.StatusConflict, code)

	resp, err := http.Get(ts.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	var stats struct {
		Extras repository.Stats `json:"extras"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, repository.Stats{Total: 1, AIWins: 1}, stats.Extras)

	resp, err = http.Get(ts.URL + "/api/history?limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	var history struct {
		Extras struct {
			List []repository.Result `json:"list"`
		} `json:"extras"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history.Extras.List, 1)
	assert.Equal(t, created.ID, history.Extras.List[0].GameID)
	assert.Equal(t, game.AI, history.Extras.List[0].Winner)
	assert.Equal(t, 6, history.Extras.List[0].Moves)
}

func TestServer_IndexAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Tic-Tac-Toe")
	assert.Equal(t, 9, strings.Count(string(body), `class="cell"`))

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) proto.ServerToClientMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg proto.ServerToClientMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServer_WebSocketGame(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "")

	hello := readMessage(t, conn)
	require.Equal(t, proto.TypeUpdate, hello.Type)
	require.NotEmpty(t, hello.GameID)
	assert.Equal(t, game.StatusInProgress, hello.Status)
	assert.Equal(t, -1, hello.AIMove)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "position": 0}))
	update := readMessage(t, conn)
	assert.Equal(t, proto.TypeUpdate, update.Type)
	assert.Equal(t, 4, update.AIMove)
	assert.Equal(t, game.Human, update.Board[0])
	assert.Equal(t, game.AI, update.Board[4])

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "position": 4}))
	rejected := readMessage(t, conn)
	assert.Equal(t, proto.TypeError, rejected.Type)
	assert.Equal(t, "invalid move", rejected.Reason)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "move"}))
	assert.Equal(t, proto.TypeError, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	malformed := readMessage(t, conn)
	assert.Equal(t, "malformed message", malformed.Reason)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "reset"}))
	reset := readMessage(t, conn)
	assert.Equal(t, proto.TypeUpdate, reset.Type)
	assert.Zero(t, reset.Moves)
	assert.Equal(t, hello.GameID, reset.GameID)
}

func TestServer_WebSocketResumesExistingGame(t *testing.T) {
	ts := newTestServer(t)

	code, created := postJSON(t, ts.URL+"/api/games", "")
	require.Equal(t, http.StatusCreated, code)
	code, _ = postJSON(t, ts.URL+"/api/games/"+created.ID+"/move", `{"position":8}`)
	require.Equal(t, http.StatusOK, code)

	conn := dial(t, ts, "?game_id="+created.ID)
	hello := readMessage(t, conn)
	assert.Equal(t, created.ID, hello.GameID)
	assert.Equal(t, 2, hello.Moves)
	assert.Equal(t, game.Human, hello.Board[8])
}
