package serviceImp

import (
	"context"

	"evergraze/entities"
	"evergraze/pkg/apperr"
	"evergraze/pkg/metrics"
	repo "evergraze/pkg/record/repository"
	"evergraze/pkg/record/service"
)

const maxLimit = 500

type recordSvc struct {
	r            repo.RecordRepository
	defaultLimit int
}

func NewRecordService(r repo.RecordRepository, defaultLimit int) service.RecordService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &recordSvc{r: r, defaultLimit: defaultLimit}
}

func schemaOf(k entities.Kind) (entities.Schema, error) {
	s, ok := entities.SchemaOf(k)
	if !ok {
		return entities.Schema{}, apperr.Validation("unknown record kind")
	}
	return s, nil
}

func (s *recordSvc) Create(ctx context.Context, k entities.Kind, fields map[string]string) (*entities.Record, error) {
	sc, err := schemaOf(k)
	if err != nil {
		return nil, err
	}
	values, err := normalize(sc, fields, false)
	if err != nil {
		return nil, err
	}
	if k == entities.KindLivestock {
		if err := s.checkUniqueAnimal(ctx, values["animal_id"], 0); err != nil {
			return nil, err
		}
	}
	id, err := s.r.Create(ctx, k, values)
	if err != nil {
		return nil, err
	}
	metrics.RecordWrites.WithLabelValues(sc.Name, "create").Inc()
	return &entities.Record{ID: id, Kind: k, Values: values}, nil
}

func (s *recordSvc) ListRecent(ctx context.Context, k entities.Kind, limit int) ([]entities.Record, error) {
	if _, err := schemaOf(k); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.r.Recent(ctx, k, limit)
}

func (s *recordSvc) ListAll(ctx context.Context, k entities.Kind) ([]entities.Record, error) {
	if _, err := schemaOf(k); err != nil {
		return nil, err
	}
	return s.r.All(ctx, k)
}

func (s *recordSvc) Manage(ctx context.Context) (*service.ManageView, error) {
	var v service.ManageView
	var err error
	if v.Livestock, err = s.r.All(ctx, entities.KindLivestock); err != nil {
		return nil, err
	}
	if v.Weights, err = s.r.All(ctx, entities.KindWeight); err != nil {
		return nil, err
	}
	if v.Vaccinations, err = s.r.All(ctx, entities.KindVaccination); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *recordSvc) Get(ctx context.Context, k entities.Kind, id uint) (*entities.Record, error) {
	if _, err := schemaOf(k); err != nil {
		return nil, err
	}
	return s.r.FindByID(ctx, k, id)
}

// Update replaces the given fields of one row; other columns keep their values.
func (s *recordSvc) Update(ctx context.Context, k entities.Kind, id uint, fields map[string]string) (*entities.Record, error) {
	sc, err := schemaOf(k)
	if err != nil {
		return nil, err
	}
	values, err := normalize(sc, fields, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.r.FindByID(ctx, k, id); err != nil {
		return nil, err
	}
	if aid, ok := values["animal_id"]; ok && k == entities.KindLivestock {
		if err := s.checkUniqueAnimal(ctx, aid, id); err != nil {
			return nil, err
		}
	}
	if err := s.r.UpdateByID(ctx, k, id, values); err != nil {
		return nil, err
	}
	metrics.RecordWrites.WithLabelValues(sc.Name, "update").Inc()
	return s.r.FindByID(ctx, k, id)
}

func (s *recordSvc) Delete(ctx context.Context, k entities.Kind, id uint) error {
	sc, err := schemaOf(k)
	if err != nil {
		return err
	}
	if err := s.r.DeleteByID(ctx, k, id); err != nil {
		return err
	}
	metrics.RecordWrites.WithLabelValues(sc.Name, "delete").Inc()
	return nil
}

// checkUniqueAnimal keeps one livestock profile per animal_id. self is the row
// being edited, 0 on create.
func (s *recordSvc) checkUniqueAnimal(ctx context.Context, animalID string, self uint) error {
	existing, err := s.r.ByAnimal(ctx, entities.KindLivestock, animalID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.ID != self {
			return apperr.Validation("animal_id %q already has a livestock profile (id %d)", animalID, e.ID)
		}
	}
	return nil
}
