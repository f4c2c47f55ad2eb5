package elomraden

import "go.uber.org/fx"

var Module = fx.Module("elomraden",
	fx.Provide(NewClient),
	fx.Provide(NewResolver),
)
