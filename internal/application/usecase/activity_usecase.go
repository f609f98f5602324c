package usecase

import (
	"context"
	"fmt"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

// ActivityUseCase expone el feed de actividad del tenant.
type ActivityUseCase struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(activityRepo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{activityRepo: activityRepo}
}

// List devuelve las entradas de auditoría más recientes del tenant.
func (uc *ActivityUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	page.DefaultPage()
	entries, err := uc.activityRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar actividad: %w", err)
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     e.Action,
			Payload:    e.Payload,
			CreatedAt:  e.CreatedAt,
		})
	}
	return &dto.ActivityListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
