package alerting

import "go.uber.org/fx"

var Module = fx.Module("alerting",
	fx.Provide(New),
)
