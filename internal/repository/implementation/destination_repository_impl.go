package implementation

import (
	"context"
	"errors"

	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/mapper"
	"ai-travelmate-be/internal/model"
	"ai-travelmate-be/internal/repository/contract"
	"ai-travelmate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DestinationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DestinationMapper
}

func NewDestinationRepository(db *gorm.DB) contract.DestinationRepository {
	return &DestinationRepositoryImpl{
		db:     db,
		mapper: mapper.NewDestinationMapper(),
	}
}

func (r *DestinationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DestinationRepositoryImpl) Create(ctx context.Context, destination *entity.Destination) error {
	m := r.mapper.ToModel(destination)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*destination = *r.mapper.ToEntity(m)
	return nil
}

func (r *DestinationRepositoryImpl) Update(ctx context.Context, destination *entity.Destination) error {
	m := r.mapper.ToModel(destination)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*destination = *r.mapper.ToEntity(m)
	return nil
}

func (r *DestinationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Destination{}, id).Error
}

func (r *DestinationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Destination, error) {
	var m model.Destination
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DestinationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Destination, error) {
	var models []*model.Destination
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Destination, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DestinationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Destination{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
