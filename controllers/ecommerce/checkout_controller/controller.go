package checkout_controller

import (
	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/services"
	"go.uber.org/zap"
)

// Controller serves the simulated checkout and order receipts.
type Controller struct {
	sessions *cart.Sessions
	checkout *services.CheckoutService
	log      *zap.Logger
}

func New(sessions *cart.Sessions, checkout *services.CheckoutService, log *zap.Logger) *Controller {
	return &Controller{sessions: sessions, checkout: checkout, log: log}
}
