package gridarea

import (
	"github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("gridarea",
	fx.Provide(repository.Provide),
)
