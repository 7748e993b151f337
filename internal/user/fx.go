package user

import (
	"github.com/noreyni/webhook-api/internal/user/repository"
	"github.com/noreyni/webhook-api/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
