package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/engrate/eg-power-tariffs-plugin/internal/alerting"
	"github.com/engrate/eg-power-tariffs-plugin/internal/clock"
	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
	"github.com/engrate/eg-power-tariffs-plugin/internal/elomraden"
	"github.com/engrate/eg-power-tariffs-plugin/internal/gridarea"
	"github.com/engrate/eg-power-tariffs-plugin/internal/importer"
	"github.com/engrate/eg-power-tariffs-plugin/internal/migration"
	"github.com/engrate/eg-power-tariffs-plugin/internal/observability"
	"github.com/engrate/eg-power-tariffs-plugin/internal/operator"
	"github.com/engrate/eg-power-tariffs-plugin/internal/registrar"
	"github.com/engrate/eg-power-tariffs-plugin/internal/server"
	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff"
	"github.com/engrate/eg-power-tariffs-plugin/internal/version"
	"github.com/engrate/eg-power-tariffs-plugin/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "powertariffs",
		Short:   "Power tariffs plugin CLI",
		Version: version.Current(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newImportCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Run the imports enabled in config, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport()
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations and configured imports, then start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			if err := runImport(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		alerting.Module,
		operator.Module,
		gridarea.Module,
		tariff.Module,
		elomraden.Module,
		importer.Module,
		registrar.Module,
		server.Module,
	)
	app.Run()
}

func runImport() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		operator.Module,
		gridarea.Module,
		tariff.Module,
		importer.Module,
		fx.Invoke(runConfiguredImports),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return app.Stop(context.Background())
}

func runConfiguredImports(lc fx.Lifecycle, i *importer.Importer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return i.RunConfigured(ctx)
		},
	})
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
