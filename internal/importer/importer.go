package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engrate/eg-power-tariffs-plugin/internal/clock"
	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
	gridareadomain "github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/domain"
	"github.com/engrate/eg-power-tariffs-plugin/internal/observability"
	operatordomain "github.com/engrate/eg-power-tariffs-plugin/internal/operator/domain"
	tariffdomain "github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
)

// Importer loads the bundled CSV data sets into the database. Each Load
// method runs in one transaction and is idempotent: rows that already
// exist are skipped, so re-running an import adds nothing.
type Importer struct {
	db        *gorm.DB
	log       *zap.Logger
	metrics   *observability.Metrics
	clock     clock.Clock
	cfg       *config.Config
	operators operatordomain.Repository
	areas     gridareadomain.Repository
	tariffs   tariffdomain.Repository
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Metrics   *observability.Metrics
	Clock     clock.Clock
	Config    *config.Config
	Operators operatordomain.Repository
	Areas     gridareadomain.Repository
	Tariffs   tariffdomain.Repository
}

func New(p Params) *Importer {
	return &Importer{
		db:        p.DB,
		log:       p.Log.Named("importer"),
		metrics:   p.Metrics,
		clock:     p.Clock,
		cfg:       p.Config,
		operators: p.Operators,
		areas:     p.Areas,
		tariffs:   p.Tariffs,
	}
}

// RunConfigured performs the imports enabled in config, in dependency
// order: operators before grid areas before tariffs.
func (i *Importer) RunConfigured(ctx context.Context) error {
	if i.cfg.Importer.LoadGridOperators {
		if err := i.LoadGridOperators(ctx); err != nil {
			return err
		}
	}
	if i.cfg.Importer.LoadMeteringGridAreas {
		if err := i.LoadMeteringGridAreas(ctx); err != nil {
			return err
		}
	}
	if i.cfg.Importer.LoadTariffsDefinitions {
		if err := i.LoadTariffDefinitions(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (i *Importer) countRow(importer, outcome string) {
	if i.metrics == nil {
		return
	}
	i.metrics.ImportRows.WithLabelValues(importer, outcome).Inc()
}

// readDelimited reads a whole semicolon-delimited file into records.
func readDelimited(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// readKeyed reads a comma-delimited file with a header row and returns
// each data row as a column-name-to-value map.
func readKeyed(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for idx, name := range header {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
