package main

import (
	"github.com/noreyni/webhook-api/internal/clock"
	"github.com/noreyni/webhook-api/internal/config"
	"github.com/noreyni/webhook-api/internal/invitation"
	"github.com/noreyni/webhook-api/internal/observability"
	"github.com/noreyni/webhook-api/internal/principal"
	"github.com/noreyni/webhook-api/internal/project"
	"github.com/noreyni/webhook-api/internal/ratelimit"
	"github.com/noreyni/webhook-api/internal/scheduler"
	"github.com/noreyni/webhook-api/internal/server"
	"github.com/noreyni/webhook-api/internal/store"
	"github.com/noreyni/webhook-api/internal/user"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		clock.Module,
		observability.Module,
		store.Module,
		principal.Module,
		ratelimit.Module,

		user.Module,
		project.Module,
		invitation.Module,

		scheduler.Module,
		server.Module,
	)
	app.Run()
}
