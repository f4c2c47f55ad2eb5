package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	gridareadomain "github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/domain"
	tariffdomain "github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
)

// ErrDanglingComposition means a compositions row references a tariff id
// with no matching header row. The two files are produced as a pair, so
// a dangling reference indicates corrupt input and fails the whole
// batch.
var ErrDanglingComposition = errors.New("composition references unknown tariff id")

const defaultVoltage = "LV"

// tariffHeader is one parsed row of the tariff headers file, before the
// compositions are joined in.
type tariffHeader struct {
	tariffID     string
	name         string
	model        string
	description  string
	samples      int
	timeUnit     string
	buildingType tariffdomain.BuildingType
	mgaCodes     []string
	compositions []tariffdomain.Composition
}

// operatorBatch groups the headers of one operator, keeping file order.
type operatorBatch struct {
	ediel   int
	tariffs []*tariffHeader
}

// LoadTariffDefinitions imports the tariff headers and compositions
// file pair. Compositions are joined onto their headers by tariff id.
// An operator is skipped entirely when it is unknown, has no metering
// grid areas, or already has a tariff on any of its grid areas.
func (i *Importer) LoadTariffDefinitions(ctx context.Context) error {
	batches, err := i.parseHeadersFile()
	if err != nil {
		return err
	}
	compositions, err := i.parseCompositionsFile()
	if err != nil {
		return err
	}
	if err := joinCompositions(batches, compositions); err != nil {
		return err
	}

	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range batches {
			if err := i.loadOperatorTariffs(ctx, tx, batch); err != nil {
				return err
			}
		}
		return nil
	})
}

func (i *Importer) parseHeadersFile() ([]*operatorBatch, error) {
	rows, err := readKeyed(i.cfg.Importer.TariffHeadersFile)
	if err != nil {
		return nil, err
	}

	var batches []*operatorBatch
	byEdiel := map[int]*operatorBatch{}

	for _, row := range rows {
		ediel, err := strconv.Atoi(strings.TrimSpace(row["Provider Ediel"]))
		if err != nil {
			i.log.Warn("skipping tariff header with invalid ediel",
				zap.String("ediel", row["Provider Ediel"]))
			i.countRow("tariffs", "malformed")
			continue
		}

		buildingType, err := tariffdomain.ParseBuildingType(row["Building types"])
		if err != nil {
			i.log.Warn("skipping tariff header",
				zap.String("tariff_id", row["Tariff ID"]), zap.Error(err))
			i.countRow("tariffs", "parse_error")
			continue
		}

		samples, err := strconv.Atoi(strings.TrimSpace(row["Number of samples"]))
		if err != nil || samples < 1 {
			i.log.Warn("skipping tariff header with invalid sample count",
				zap.String("tariff_id", row["Tariff ID"]),
				zap.String("samples", row["Number of samples"]))
			i.countRow("tariffs", "parse_error")
			continue
		}

		header := &tariffHeader{
			tariffID:     row["Tariff ID"],
			name:         row["Name"],
			model:        row["Model Name"],
			description:  row["Description"],
			samples:      samples,
			timeUnit:     row["Time unit"],
			buildingType: buildingType,
			mgaCodes:     parseMGAList(row["Geolocation -> MGA"]),
		}

		batch, ok := byEdiel[ediel]
		if !ok {
			batch = &operatorBatch{ediel: ediel}
			byEdiel[ediel] = batch
			batches = append(batches, batch)
		}
		batch.tariffs = append(batch.tariffs, header)
	}
	return batches, nil
}

func (i *Importer) parseCompositionsFile() (map[string][]tariffdomain.Composition, error) {
	rows, err := readKeyed(i.cfg.Importer.TariffCompositionsFile)
	if err != nil {
		return nil, err
	}

	compositions := map[string][]tariffdomain.Composition{}
	for _, row := range rows {
		tariffID := row["Fee ID"]
		composition, err := tariffdomain.ParseComposition(tariffdomain.CompositionRow{
			Months:      row["Months Number"],
			Days:        row["Days"],
			FuseFrom:    row["Fuse From"],
			FuseTo:      row["Fuse To"],
			Unit:        row["Unit"],
			PriceExcVat: row["Price Ex Vat"],
			PriceIncVat: row["Price Inc Vat"],
			From:        row["From"],
			To:          row["To"],
			Multiplier:  row["Multiplier"],
			From2:       row["From2"],
			To2:         row["To2"],
			Multiplier2: row["Multiplier2"],
		})
		if err != nil {
			i.log.Warn("skipping composition row",
				zap.String("tariff_id", tariffID), zap.Error(err))
			i.countRow("tariffs", "parse_error")
			continue
		}
		compositions[tariffID] = append(compositions[tariffID], composition)
	}
	return compositions, nil
}

// joinCompositions attaches parsed compositions to their header rows.
func joinCompositions(batches []*operatorBatch, compositions map[string][]tariffdomain.Composition) error {
	byTariffID := map[string]*tariffHeader{}
	for _, batch := range batches {
		for _, header := range batch.tariffs {
			byTariffID[header.tariffID] = header
		}
	}
	for tariffID, comps := range compositions {
		header, ok := byTariffID[tariffID]
		if !ok {
			return fmt.Errorf("fee %s: %w", tariffID, ErrDanglingComposition)
		}
		header.compositions = append(header.compositions, comps...)
	}
	return nil
}

func (i *Importer) loadOperatorTariffs(ctx context.Context, tx *gorm.DB, batch *operatorBatch) error {
	operator, err := i.operators.FindByEdiel(ctx, tx, batch.ediel)
	if err != nil {
		return err
	}
	if operator == nil {
		i.log.Warn("skipping tariffs of unknown operator", zap.Int("ediel", batch.ediel))
		i.countRow("tariffs", "unknown_operator")
		return nil
	}

	areas, err := i.areas.FindByOperator(ctx, tx, operator.UID)
	if err != nil {
		return err
	}
	if len(areas) == 0 {
		i.log.Warn("skipping tariffs, operator has no metering grid areas",
			zap.Int("ediel", batch.ediel))
		i.countRow("tariffs", "no_grid_areas")
		return nil
	}

	hasTariffs, err := i.operatorHasTariffs(ctx, tx, areas)
	if err != nil {
		return err
	}
	if hasTariffs {
		i.log.Warn("operator already has tariffs, skipping", zap.Int("ediel", batch.ediel))
		i.countRow("tariffs", "exists")
		return nil
	}

	for _, header := range batch.tariffs {
		if err := i.saveTariff(ctx, tx, batch.ediel, header, areas); err != nil {
			return err
		}
	}
	return nil
}

// operatorHasTariffs reports whether any of the operator's grid areas
// already carries a tariff association. Every area is inspected, a
// partial prior import on a later area still blocks the batch.
func (i *Importer) operatorHasTariffs(ctx context.Context, tx *gorm.DB, areas []gridareadomain.MeteringGridArea) (bool, error) {
	for _, area := range areas {
		count, err := i.tariffs.CountAssociationsByMGA(ctx, tx, area.Code)
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (i *Importer) saveTariff(ctx context.Context, tx *gorm.DB, ediel int, header *tariffHeader, operatorAreas []gridareadomain.MeteringGridArea) error {
	if len(header.compositions) == 0 {
		i.log.Warn("tariff has no compositions",
			zap.String("name", header.name), zap.Int("ediel", ediel))
	}

	targets := operatorAreas
	if len(header.mgaCodes) > 0 {
		resolved := make([]gridareadomain.MeteringGridArea, 0, len(header.mgaCodes))
		for _, code := range header.mgaCodes {
			area, err := i.areas.FindByCode(ctx, tx, code)
			if err != nil {
				return err
			}
			if area != nil {
				resolved = append(resolved, *area)
			}
		}
		if len(resolved) > 0 {
			targets = resolved
		}
	}

	tariff := &tariffdomain.PowerTariff{
		UID:             uuid.New(),
		Name:            header.name,
		Model:           header.model,
		Description:     header.description,
		SamplesPerMonth: header.samples,
		TimeUnit:        header.timeUnit,
		BuildingType:    header.buildingType,
		LastUpdated:     i.clock.Now(),
		Voltage:         defaultVoltage,
		Compositions:    header.compositions,
	}
	if err := i.tariffs.Create(ctx, tx, tariff); err != nil {
		return err
	}

	associations := make([]tariffdomain.AreaAssociation, 0, len(targets))
	for _, area := range targets {
		associations = append(associations, tariffdomain.AreaAssociation{
			UID:       uuid.New(),
			MGACode:   area.Code,
			TariffUID: tariff.UID,
			Voltage:   defaultVoltage,
		})
	}
	if err := i.tariffs.Associate(ctx, tx, associations); err != nil {
		return err
	}

	i.log.Info("created power tariff",
		zap.String("name", header.name),
		zap.Int("ediel", ediel),
		zap.Int("grid_areas", len(targets)))
	i.countRow("tariffs", "created")
	return nil
}

// parseMGAList splits the explicit MGA-code column. Blank or "all"
// means the operator's full set.
func parseMGAList(value string) []string {
	s := strings.TrimSpace(value)
	if s == "" || strings.EqualFold(s, "all") {
		return nil
	}
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
