package server

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/alerting"
	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
	"github.com/engrate/eg-power-tariffs-plugin/internal/elomraden"
	"github.com/engrate/eg-power-tariffs-plugin/internal/importer"
	"github.com/engrate/eg-power-tariffs-plugin/internal/observability"
	tariffdomain "github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
)

// Server holds the handler dependencies for the HTTP API.
type Server struct {
	cfg       *config.Config
	log       *zap.Logger
	metrics   *observability.Metrics
	node      *snowflake.Node
	alerter   alerting.Alerter
	tariffSvc tariffdomain.Service
	lookup    *elomraden.Client
	importer  *importer.Importer
}

type Params struct {
	fx.In

	Config    *config.Config
	Log       *zap.Logger
	Metrics   *observability.Metrics
	Node      *snowflake.Node
	Alerter   alerting.Alerter
	TariffSvc tariffdomain.Service
	Lookup    *elomraden.Client
	Importer  *importer.Importer
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:       p.Config,
		log:       p.Log.Named("server"),
		metrics:   p.Metrics,
		node:      p.Node,
		alerter:   p.Alerter,
		tariffSvc: p.TariffSvc,
		lookup:    p.Lookup,
		importer:  p.Importer,
	}
}
