package server

import (
	"ctchen222/tictactoe-ai/internal/api/controller"
	"ctchen222/tictactoe-ai/internal/service"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("server")

//go:embed web/index.html
var webFS embed.FS

// Server wires the HTTP routes and the websocket endpoint to the game service.
type Server struct {
	engine         *gin.Engine
	gameService    service.GameService
	gameController *controller.GameController
	upgrader       websocket.Upgrader
}

// NewServer builds the gin engine with every route registered.
func NewServer(gameService service.GameService, sessionTTL time.Duration) *Server {
	s := &Server{
		engine:         gin.New(),
		gameService:    gameService,
		gameController: controller.NewGameController(gameService, sessionTTL),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/index.html")))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	gc := s.gameController

	s.engine.GET("/", gc.Index)
	s.engine.POST("/move", gc.SessionMove)
	s.engine.POST("/reset", gc.SessionReset)
	s.engine.GET("/healthz", gc.Health)
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api")
	{
		api.POST("/games", gc.CreateGame)
		api.GET("/games/:id", gc.GetGame)
		api.POST("/games/:id/move", gc.Move)
		api.POST("/games/:id/reset", gc.Reset)
		api.GET("/stats", gc.Stats)
		api.GET("/history", gc.History)
	}
}

// Engine returns the bare gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the engine wrapped with OpenTelemetry HTTP instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, "tic-tac-toe",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.DebugContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
