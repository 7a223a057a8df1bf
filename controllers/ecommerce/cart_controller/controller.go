package cart_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/middleware"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controller serves the shopper's cart. Every handler works on the store of
// the session set by middleware.CartSession.
type Controller struct {
	sessions *cart.Sessions
	repo     catalog.Repository
	checkout *services.CheckoutService
	log      *zap.Logger
}

func New(sessions *cart.Sessions, repo catalog.Repository, checkout *services.CheckoutService, log *zap.Logger) *Controller {
	return &Controller{sessions: sessions, repo: repo, checkout: checkout, log: log}
}

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// storeFor leases the session's cart; the caller must call release when done.
func (ctl *Controller) storeFor(c *gin.Context) (*cart.Store, func(), bool) {
	sessionID, ok := middleware.GetCartSession(c)
	if !ok {
		ctl.log.Error("cart session missing from request context")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Cart session unavailable"))
		return nil, nil, false
	}
	store, release := ctl.sessions.Acquire(c.Request.Context(), sessionID)
	return store, release, true
}

func cartResponse(store *cart.Store) models.CartResponse {
	state := store.Snapshot()
	return models.CartResponse{
		Items:      state.Items,
		TotalItems: state.TotalItems(),
		TotalPrice: state.TotalPrice(),
		IsLoading:  state.IsLoading,
	}
}
