package filter_controller

import (
	"github.com/CodeStar86/Bangin-Gear/catalog"
	"go.uber.org/zap"
)

// Controller serves the storefront filter sidebar.
type Controller struct {
	repo catalog.Repository
	cfg  catalog.Config
	log  *zap.Logger
}

func New(repo catalog.Repository, cfg catalog.Config, log *zap.Logger) *Controller {
	return &Controller{repo: repo, cfg: cfg, log: log}
}
