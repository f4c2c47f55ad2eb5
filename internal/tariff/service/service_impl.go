package service

import (
	"context"

	gridareadomain "github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/domain"
	operatordomain "github.com/engrate/eg-power-tariffs-plugin/internal/operator/domain"
	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Repo      domain.Repository
	Operators operatordomain.Repository
	Areas     gridareadomain.Repository
	Resolver  domain.AreaResolver
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	operators operatordomain.Repository
	areas     gridareadomain.Repository
	resolver  domain.AreaResolver
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("tariff.service"),
		repo:      p.Repo,
		operators: p.Operators,
		areas:     p.Areas,
		resolver:  p.Resolver,
	}
}

func (s *Service) ListOperators(ctx context.Context) ([]domain.OperatorResponse, error) {
	operators, err := s.operators.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.OperatorResponse, 0, len(operators))
	for _, op := range operators {
		responses = append(responses, domain.OperatorResponse{
			UID:   op.UID.String(),
			Name:  op.Name,
			Ediel: op.Ediel,
		})
	}
	return responses, nil
}

func (s *Service) ListTariffs(ctx context.Context) ([]domain.Response, error) {
	tariffs, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, tariffs)
}

func (s *Service) GetByMGA(ctx context.Context, countryCode, mgaCode string) ([]domain.Response, error) {
	tariffs, err := s.repo.FindByMGA(ctx, s.db, countryCode, mgaCode)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, tariffs)
}

func (s *Service) GetByPostalCode(ctx context.Context, countryCode string, postalCode int) ([]domain.Response, error) {
	areaCode, err := s.resolver.AreaCodeByPostalCode(ctx, postalCode)
	if err != nil {
		return nil, err
	}
	if areaCode == "" {
		s.log.Info("no grid area for postal code", zap.Int("postal_code", postalCode))
		return []domain.Response{}, nil
	}
	return s.GetByMGA(ctx, countryCode, areaCode)
}

func (s *Service) GetByCoordinates(ctx context.Context, countryCode string, lat, lon float64) ([]domain.Response, error) {
	areaCode, err := s.resolver.AreaCodeByCoordinates(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	if areaCode == "" {
		return []domain.Response{}, nil
	}
	return s.GetByMGA(ctx, countryCode, areaCode)
}

func (s *Service) GetByAddress(ctx context.Context, countryCode, street, city string) ([]domain.Response, error) {
	areaCode, err := s.resolver.AreaCodeByAddress(ctx, street, city)
	if err != nil {
		return nil, err
	}
	if areaCode == "" {
		return []domain.Response{}, nil
	}
	return s.GetByMGA(ctx, countryCode, areaCode)
}

func (s *Service) toResponses(ctx context.Context, tariffs []domain.PowerTariff) ([]domain.Response, error) {
	responses := make([]domain.Response, 0, len(tariffs))
	for i := range tariffs {
		areas, err := s.areaResponses(ctx, &tariffs[i])
		if err != nil {
			return nil, err
		}

		compositions := tariffs[i].Compositions
		if compositions == nil {
			compositions = []domain.Composition{}
		}

		responses = append(responses, domain.Response{
			UID:               tariffs[i].UID.String(),
			Name:              tariffs[i].Name,
			Model:             tariffs[i].Model,
			Description:       tariffs[i].Description,
			SamplesPerMonth:   tariffs[i].SamplesPerMonth,
			TimeUnit:          tariffs[i].TimeUnit,
			BuildingType:      tariffs[i].BuildingType,
			LastUpdated:       tariffs[i].LastUpdated,
			ValidFrom:         tariffs[i].ValidFrom,
			ValidTo:           tariffs[i].ValidTo,
			Voltage:           tariffs[i].Voltage,
			Compositions:      compositions,
			MeteringGridAreas: areas,
		})
	}
	return responses, nil
}

func (s *Service) areaResponses(ctx context.Context, tariff *domain.PowerTariff) ([]domain.AreaResponse, error) {
	associations, err := s.repo.AssociationsByTariff(ctx, s.db, tariff.UID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.AreaResponse, 0, len(associations))
	for _, assoc := range associations {
		area, err := s.areas.FindByCode(ctx, s.db, assoc.MGACode)
		if err != nil {
			return nil, err
		}
		if area == nil {
			s.log.Warn("association references unknown grid area", zap.String("mga_code", assoc.MGACode))
			continue
		}

		response := domain.AreaResponse{
			Code:                 area.Code,
			Name:                 area.Name,
			CountryCode:          area.CountryCode,
			MeteringBusinessArea: area.MeteringBusinessArea,
			Voltage:              assoc.Voltage,
		}

		op, err := s.operators.FindByUID(ctx, s.db, area.GridOperatorUID.String())
		if err != nil {
			return nil, err
		}
		if op != nil {
			response.GridOperator = domain.OperatorResponse{
				UID:   op.UID.String(),
				Name:  op.Name,
				Ediel: op.Ediel,
			}
		}

		responses = append(responses, response)
	}
	return responses, nil
}
