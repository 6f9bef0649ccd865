package service

import (
	"context"
	"fmt"
	"time"

	"ai-travelmate-be/internal/dto"
	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/pkg/logger"
	"ai-travelmate-be/internal/repository/specification"
	"ai-travelmate-be/internal/repository/unitofwork"
	"ai-travelmate-be/pkg/search"
	"ai-travelmate-be/pkg/weather"

	"github.com/google/uuid"
)

// IDestinationService exposes catalog reads and writes. It also implements
// search.Catalog so the progressive-filter planner can query it directly.
type IDestinationService interface {
	search.Catalog

	Create(ctx context.Context, req *dto.CreateDestinationRequest) (*dto.CreateDestinationResponse, error)
	List(ctx context.Context, req *dto.ListDestinationsRequest) ([]*dto.ShowDestinationResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDestinationResponse, error)
}

type destinationService struct {
	uowFactory    unitofwork.RepositoryFactory
	weatherClient *weather.Client
	logger        logger.ILogger
}

func NewDestinationService(
	uowFactory unitofwork.RepositoryFactory,
	weatherClient *weather.Client,
	log logger.ILogger,
) IDestinationService {
	return &destinationService{
		uowFactory:    uowFactory,
		weatherClient: weatherClient,
		logger:        log,
	}
}

// Find translates a planner query into repository specifications. Always
// scoped to active rows, ordered by popularity so truncation keeps the
// best-known places.
func (ds *destinationService) Find(ctx context.Context, q search.Query) ([]search.Destination, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ActiveDestinations{},
		specification.OrderBy{Field: "popularity_score", Desc: true},
	}

	if len(q.RestrictToIDs) > 0 {
		specs = append(specs, specification.ByIDs{IDs: q.RestrictToIDs})
	}
	if len(q.TagFilter) > 0 {
		if q.TagFilterMode == search.TagModeStrict {
			specs = append(specs, specification.HasAllTags{Tags: q.TagFilter})
		} else {
			specs = append(specs, specification.HasAnyTag{Tags: q.TagFilter})
		}
	}
	if q.BudgetMax > 0 {
		specs = append(specs, specification.BudgetAtMost{Max: q.BudgetMax})
	}
	if q.BudgetWithin > 0 {
		specs = append(specs, specification.BudgetWithin{Amount: q.BudgetWithin})
	}
	if q.DurationMax > 0 {
		specs = append(specs, specification.DurationAtMost{Days: q.DurationMax})
	}
	if q.Location != "" {
		specs = append(specs, specification.ByNameLike{Name: q.Location})
	}
	if q.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: q.Limit})
	}

	rows, err := uow.DestinationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}

	results := make([]search.Destination, len(rows))
	for i, d := range rows {
		results[i] = search.Destination{
			ID:                  d.Id,
			Name:                d.Name,
			State:               d.State,
			BudgetMin:           d.BudgetRangeMin,
			BudgetMax:           d.BudgetRangeMax,
			TypicalDurationDays: d.TypicalDurationDays,
			Tags:                d.Tags,
		}
	}
	return results, nil
}

func (ds *destinationService) Create(ctx context.Context, req *dto.CreateDestinationRequest) (*dto.CreateDestinationResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DestinationRepository().FindOne(ctx, specification.FilterBy{Field: "name", Value: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("destination %q already exists", req.Name)
	}

	destination := entity.Destination{
		Id:                  uuid.New(),
		Name:                req.Name,
		State:               req.State,
		Country:             req.Country,
		Description:         req.Description,
		Tags:                req.Tags,
		BudgetRangeMin:      req.BudgetRangeMin,
		BudgetRangeMax:      req.BudgetRangeMax,
		TypicalDurationDays: req.TypicalDurationDays,
		SafetyRating:        req.SafetyRating,
		PopularityScore:     req.PopularityScore,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		ClimateType:         req.ClimateType,
		IsActive:            true,
		CreatedAt:           time.Now(),
	}

	if err := uow.DestinationRepository().Create(ctx, &destination); err != nil {
		return nil, err
	}

	ds.logger.Info("destination", "Destination created", map[string]interface{}{
		"id":   destination.Id,
		"name": destination.Name,
	})

	return &dto.CreateDestinationResponse{Id: destination.Id}, nil
}

func (ds *destinationService) List(ctx context.Context, req *dto.ListDestinationsRequest) ([]*dto.ShowDestinationResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ActiveDestinations{},
		specification.OrderBy{Field: "popularity_score", Desc: true},
	}
	if req.Tag != "" {
		specs = append(specs, specification.HasAllTags{Tags: []string{req.Tag}})
	}
	if req.State != "" {
		specs = append(specs, specification.ByState{State: req.State})
	}
	if req.BudgetMax > 0 {
		specs = append(specs, specification.BudgetAtMost{Max: req.BudgetMax})
	}
	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: req.Offset})

	rows, err := uow.DestinationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ShowDestinationResponse, 0, len(rows))
	for _, d := range rows {
		response = append(response, ds.toShowResponse(d, nil))
	}
	return response, nil
}

func (ds *destinationService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDestinationResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	destination, err := uow.DestinationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, fmt.Errorf("destination not found")
	}

	var conditions *weather.Conditions
	if ds.weatherClient != nil && ds.weatherClient.Enabled() {
		conditions, err = ds.weatherClient.Current(ctx, destination.Latitude, destination.Longitude)
		if err != nil {
			// Weather is decoration on the detail view, never a failure.
			ds.logger.Warn("destination", "Weather lookup failed", map[string]interface{}{
				"destination": destination.Name,
				"error":       err.Error(),
			})
			conditions = nil
		}
	}

	return ds.toShowResponse(destination, conditions), nil
}

func (ds *destinationService) toShowResponse(d *entity.Destination, conditions *weather.Conditions) *dto.ShowDestinationResponse {
	resp := &dto.ShowDestinationResponse{
		DestinationCardDTO: dto.DestinationCardDTO{
			Id:              d.Id,
			Name:            d.Name,
			State:           d.State,
			Description:     d.Description,
			Tags:            d.Tags,
			BudgetRangeMin:  d.BudgetRangeMin,
			BudgetRangeMax:  d.BudgetRangeMax,
			DurationDays:    d.TypicalDurationDays,
			SafetyRating:    d.SafetyRating,
			PopularityScore: d.PopularityScore,
		},
		Country:     d.Country,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		ClimateType: d.ClimateType,
	}
	if conditions != nil {
		resp.Weather = &dto.WeatherSnapshotDTO{
			Condition: conditions.Description,
			TempC:     conditions.Temperature,
		}
	}
	return resp
}
