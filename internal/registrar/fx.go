package registrar

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
	"github.com/engrate/eg-power-tariffs-plugin/internal/version"
)

var Module = fx.Module("registrar",
	fx.Provide(NewClient),
	fx.Invoke(registerOnStart),
)

func registerOnStart(lc fx.Lifecycle, cfg *config.Config, client *Client, log *zap.Logger) {
	if !cfg.Registrar.AutoRegister {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			manifest := Manifest{
				Name:     cfg.Registrar.PluginName,
				Author:   cfg.Registrar.Author,
				Category: cfg.Registrar.Category,
				Version:  version.Current(),
				BaseURL:  cfg.HTTP.Addr,
			}
			if err := client.Register(ctx, manifest); err != nil {
				// The plugin stays useful without a registrar entry.
				log.Warn("plugin registration failed", zap.Error(err))
			}
			return nil
		},
	})
}
