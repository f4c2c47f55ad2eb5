package operator

import (
	"github.com/engrate/eg-power-tariffs-plugin/internal/operator/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("operator",
	fx.Provide(repository.Provide),
)
