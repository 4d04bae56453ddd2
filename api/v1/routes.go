package v1

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"nudge/internal/engine"
)

// TurnHandler processes one chat turn. Satisfied by *engine.Engine.
type TurnHandler interface {
	HandleTurn(ctx context.Context, turn engine.ChatTurn) (*engine.ActionResult, error)
}

// Router wraps v1 API dependencies.
type Router struct {
	engine TurnHandler
}

// NewRouter creates a new v1 API router.
func NewRouter(eng TurnHandler) *Router {
	return &Router{engine: eng}
}

// RegisterRoutes registers all v1 routes on the given mux router.
func (r *Router) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/chat", r.HandleChat).Methods(http.MethodPost)
}
