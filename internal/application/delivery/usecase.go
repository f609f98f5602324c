package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	deliverydom "github.com/siteproc/siteproc-api/internal/domain/delivery"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

// DeliveryUseCase alta y consulta de entregas.
type DeliveryUseCase struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	projectRepo  repository.ProjectRepository
	auditor      Auditor
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	projectRepo repository.ProjectRepository,
	auditor Auditor,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		projectRepo:  projectRepo,
		auditor:      auditor,
	}
}

// Create crea una entrega en estado pending. Las referencias a orden y
// proyecto, si vienen, deben existir en el mismo tenant (ErrNotFound si no).
func (uc *DeliveryUseCase) Create(companyID, actorID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.OrderID != nil {
		order, err := uc.orderRepo.GetByIDAndCompany(*in.OrderID, companyID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.ProjectID != nil {
		project, err := uc.projectRepo.GetByIDAndCompany(*in.ProjectID, companyID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	d := &entity.Delivery{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		OrderID:       in.OrderID,
		ProjectID:     in.ProjectID,
		Status:        string(deliverydom.StatusPending),
		DriverName:    in.DriverName,
		VehicleNumber: in.VehicleNumber,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range in.Items {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		d.Items = append(d.Items, entity.DeliveryItem{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			DeliveryID:  d.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.Quantity.Mul(item.UnitPrice),
			CreatedAt:   now,
		})
	}

	if err := uc.deliveryRepo.Create(d); err != nil {
		return nil, err
	}

	uc.auditor.Record(companyID, actorID, "delivery", d.ID, "created", map[string]any{
		"order_id":   in.OrderID,
		"project_id": in.ProjectID,
		"items":      len(d.Items),
	})
	return ToDeliveryResponse(d), nil
}

// GetByID obtiene una entrega con items (scope tenant). Las archivadas no se
// exponen en lecturas de API: ausente, cross-tenant y archivada responden
// ErrNotFound por igual.
func (uc *DeliveryUseCase) GetByID(id, companyID string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByIDAndCompany(id, companyID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.IsArchived {
		return nil, domain.ErrNotFound
	}
	return ToDeliveryResponse(d), nil
}

// List lista entregas no archivadas con paginación.
func (uc *DeliveryUseCase) List(companyID string, limit, offset int) (*dto.DeliveryListResponse, error) {
	list, err := uc.deliveryRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *ToDeliveryResponse(d))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToDeliveryResponse mapea la entidad al DTO HTTP.
func ToDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	items := make([]dto.DeliveryItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DeliveryItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return &dto.DeliveryResponse{
		ID:            d.ID,
		CompanyID:     d.CompanyID,
		OrderID:       d.OrderID,
		ProjectID:     d.ProjectID,
		Status:        d.Status,
		DriverName:    d.DriverName,
		VehicleNumber: d.VehicleNumber,
		SignerName:    d.SignerName,
		Notes:         d.Notes,
		DeliveredAt:   d.DeliveredAt,
		IsArchived:    d.IsArchived,
		Items:         items,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
