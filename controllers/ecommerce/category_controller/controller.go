package category_controller

import (
	"github.com/CodeStar86/Bangin-Gear/catalog"
	"go.uber.org/zap"
)

// Controller lists the storefront categories.
type Controller struct {
	repo catalog.Repository
	log  *zap.Logger
}

func New(repo catalog.Repository, log *zap.Logger) *Controller {
	return &Controller{repo: repo, log: log}
}
