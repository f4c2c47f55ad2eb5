package importer

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	operatordomain "github.com/engrate/eg-power-tariffs-plugin/internal/operator/domain"
)

const approvedStatus = "Godkänd"

// LoadGridOperators imports the grid operators CSV. Rows are
// name;ediel;type;status, semicolon delimited with a header line. Only
// approved operators are taken; malformed rows and operators already in
// the database are skipped with a warning.
func (i *Importer) LoadGridOperators(ctx context.Context) error {
	records, err := readDelimited(i.cfg.Importer.OperatorsFile)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		i.log.Warn("operators file is empty", zap.String("path", i.cfg.Importer.OperatorsFile))
		return nil
	}

	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range records[1:] {
			if len(row) < 4 {
				i.log.Warn("skipping malformed operator row", zap.Strings("row", row))
				i.countRow("operators", "malformed")
				continue
			}

			name := strings.TrimSpace(row[0])
			ediel, err := strconv.Atoi(strings.TrimSpace(row[1]))
			if err != nil {
				i.log.Warn("skipping operator row with invalid ediel", zap.Strings("row", row))
				i.countRow("operators", "malformed")
				continue
			}
			status := strings.TrimSpace(row[3])
			if !strings.Contains(status, approvedStatus) {
				i.log.Warn("skipping unapproved operator",
					zap.String("name", name), zap.String("status", status))
				i.countRow("operators", "unapproved")
				continue
			}

			existing, err := i.operators.FindByEdiel(ctx, tx, ediel)
			if err != nil {
				return err
			}
			if existing != nil {
				i.log.Warn("operator already exists, skipping", zap.String("name", name))
				i.countRow("operators", "exists")
				continue
			}

			operator := &operatordomain.GridOperator{
				UID:   uuid.New(),
				Name:  name,
				Ediel: ediel,
			}
			if err := i.operators.Create(ctx, tx, operator); err != nil {
				return err
			}
			i.log.Info("created grid operator",
				zap.String("name", name), zap.Int("ediel", ediel))
			i.countRow("operators", "created")
		}
		return nil
	})
}
