package tariff

import (
	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff/repository"
	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
