package controller

import (
	"ctchen222/tictactoe-ai/internal/api/models"
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/service"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie names the cookie that binds a browser to its game.
const SessionCookie = "game_id"

// GameController handles game-related HTTP requests.
type GameController struct {
	gameService service.GameService
	sessionTTL  time.Duration
}

// NewGameController creates a new GameController. sessionTTL is the max age of
// the session cookie; zero makes it a browser-session cookie.
func NewGameController(gameService service.GameService, sessionTTL time.Duration) *GameController {
	return &GameController{
		gameService: gameService,
		sessionTTL:  sessionTTL,
	}
}

func (gc *GameController) fail(c *gin.Context, err error) {
	e := response.FromError(err)
	if e.Code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	response.ErrorResponse(c, e.Code, e.Extras)
}

// CreateGame starts a new session.
func (gc *GameController) CreateGame(c *gin.Context) {
	state, err := gc.gameService.Create(c.Request.Context())
	if err != nil {
		gc.fail(c, err)
		return
	}
	response.CreatedResponse(c, models.NewGameResponse(state))
}

// GetGame returns the session named by the :id path parameter.
func (gc *GameController) GetGame(c *gin.Context) {
	state, err := gc.gameService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.fail(c, err)
		return
	}
	response.SuccessResponse(c, models.NewGameResponse(state))
}

// Move plays the human move from the body and returns the state after the AI
// replied.
func (gc *GameController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := gc.gameService.Move(c.Request.Context(), c.Param("id"), *req.Position)
	if err != nil {
		gc.fail(c, err)
		return
	}
	response.SuccessResponse(c, models.NewGameResponse(state))
}

// Reset clears the board of the session named by :id.
func (gc *GameController) Reset(c *gin.Context) {
	state, err := gc.gameService.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.fail(c, err)
		return
	}
	response.SuccessResponse(c, models.NewGameResponse(state))
}

// Stats returns aggregate results.
func (gc *GameController) Stats(c *gin.Context) {
	stats, err := gc.gameService.Stats(c.Request.Context())
	if err != nil {
		gc.fail(c, err)
		return
	}
	response.SuccessResponse(c, stats)
}

// History lists recent results; ?limit= is optional.
func (gc *GameController) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	results, err := gc.gameService.History(c.Request.Context(), limit)
	if err != nil {
		gc.fail(c, err)
		return
	}
	response.SuccessResponseList(c, results)
}

// sessionGame returns the game bound to the request's cookie, creating a new
// one when the cookie is missing or points at an expired session.
func (gc *GameController) sessionGame(c *gin.Context) (*service.GameState, error) {
	ctx := c.Request.Context()
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		state, err := gc.gameService.Get(ctx, id)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, err
		}
	}

	state, err := gc.gameService.Create(ctx)
	if err != nil {
		return nil, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, state.ID, int(gc.sessionTTL.Seconds()), "/", "", false, true)
	return state, nil
}

func (gc *GameController) legacyFail(c *gin.Context, err error) {
	e := response.FromError(err)
	message := e.Extras
	if e.Code == http.StatusBadRequest {
		message = "Invalid move"
	}
	if e.Code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(e.Code, models.LegacyResponse{Status: "error", Message: message})
}

// SessionMove plays a move on the cookie-bound game.
func (gc *GameController) SessionMove(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.LegacyResponse{Status: "error", Message: "Invalid move"})
		return
	}

	state, err := gc.sessionGame(c)
	if err != nil {
		gc.legacyFail(c, err)
		return
	}
	state, err = gc.gameService.Move(c.Request.Context(), state.ID, *req.Position)
	if err != nil {
		gc.legacyFail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewLegacyResponse(state.Game))
}

// SessionReset resets the cookie-bound game.
func (gc *GameController) SessionReset(c *gin.Context) {
	state, err := gc.sessionGame(c)
	if err != nil {
		gc.legacyFail(c, err)
		return
	}
	state, err = gc.gameService.Reset(c.Request.Context(), state.ID)
	if err != nil {
		gc.legacyFail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewLegacyResponse(state.Game))
}

// Index renders the board page for the cookie-bound game.
func (gc *GameController) Index(c *gin.Context) {
	state, err := gc.sessionGame(c)
	if err != nil {
		gc.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Board":  models.NewLegacyResponse(state.Game).Board,
		"Status": state.Game.Status,
		"Winner": state.Game.Winner,
	})
}

// Health reports liveness.
func (gc *GameController) Health(c *gin.Context) {
	response.SuccessResponseContent(c, "ok")
}
