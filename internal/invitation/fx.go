package invitation

import (
	"github.com/noreyni/webhook-api/internal/invitation/repository"
	"github.com/noreyni/webhook-api/internal/invitation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invitation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
