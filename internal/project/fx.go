package project

import (
	"github.com/noreyni/webhook-api/internal/project/repository"
	"github.com/noreyni/webhook-api/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
