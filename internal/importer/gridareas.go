package importer

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	gridareadomain "github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/domain"
)

// LoadMeteringGridAreas imports the metering grid areas CSV. Rows are
// operator;name;code;type;mba;country, semicolon delimited without a
// header line. Only DISTRIBUTION areas belonging to a known operator
// are taken; everything else is skipped with a warning.
func (i *Importer) LoadMeteringGridAreas(ctx context.Context) error {
	records, err := readDelimited(i.cfg.Importer.MeteringGridAreasFile)
	if err != nil {
		return err
	}

	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range records {
			if len(row) < 6 {
				i.log.Warn("skipping malformed grid area row", zap.Strings("row", row))
				i.countRow("grid_areas", "malformed")
				continue
			}

			operatorName := strings.TrimSpace(row[0])
			areaName := strings.TrimSpace(row[1])
			areaCode := strings.TrimSpace(row[2])
			areaType := strings.TrimSpace(row[3])
			mbaCode := strings.TrimSpace(row[4])
			country := strings.TrimSpace(row[5])

			if !strings.Contains(areaType, "DISTRIBUTION") {
				i.log.Warn("skipping non-distribution grid area", zap.String("name", areaName))
				i.countRow("grid_areas", "skipped_type")
				continue
			}

			operator, err := i.operators.FindByName(ctx, tx, operatorName)
			if err != nil {
				return err
			}
			if operator == nil {
				i.log.Warn("skipping grid area of unknown operator",
					zap.String("operator", operatorName), zap.String("code", areaCode))
				i.countRow("grid_areas", "unknown_operator")
				continue
			}

			existing, err := i.areas.FindByCode(ctx, tx, areaCode)
			if err != nil {
				return err
			}
			if existing != nil {
				i.log.Warn("grid area already exists, skipping", zap.String("code", areaCode))
				i.countRow("grid_areas", "exists")
				continue
			}

			area := &gridareadomain.MeteringGridArea{
				Code:                 areaCode,
				Name:                 areaName,
				CountryCode:          country,
				MeteringBusinessArea: mbaCode,
				GridOperatorUID:      operator.UID,
			}
			if err := i.areas.Create(ctx, tx, area); err != nil {
				return err
			}
			i.log.Info("created metering grid area",
				zap.String("name", areaName), zap.String("code", areaCode))
			i.countRow("grid_areas", "created")
		}
		return nil
	})
}
