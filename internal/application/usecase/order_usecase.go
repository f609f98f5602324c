package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

// OrderUseCase gestiona órdenes de compra. Los agregados de entrega de la
// orden los escribe solo el rollup; aquí nacen en cero.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	projectRepo repository.ProjectRepository
	auditor     appdelivery.Auditor
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	projectRepo repository.ProjectRepository,
	auditor appdelivery.Auditor,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		projectRepo: projectRepo,
		auditor:     auditor,
	}
}

// Create da de alta una orden. Si referencia proyecto, valida que exista en el
// tenant (cross-tenant responde igual que ausente).
func (uc *OrderUseCase) Create(ctx context.Context, companyID, actorID string, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if strings.TrimSpace(req.OrderNumber) == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.OrderedQty.IsNegative() || req.TotalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if req.ProjectID != nil {
		project, err := uc.projectRepo.GetByIDAndCompany(*req.ProjectID, companyID)
		if err != nil {
			return nil, fmt.Errorf("buscar proyecto: %w", err)
		}
		if project == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:               uuid.NewString(),
		CompanyID:        companyID,
		ProjectID:        req.ProjectID,
		OrderNumber:      strings.TrimSpace(req.OrderNumber),
		SupplierName:     req.SupplierName,
		Status:           "approved",
		OrderedQty:       req.OrderedQty,
		DeliveredQty:     decimal.Zero,
		RemainingQty:     req.OrderedQty,
		DeliveredValue:   decimal.Zero,
		TotalAmount:      req.TotalAmount,
		DeliveryProgress: entity.ProgressPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("crear orden: %w", err)
	}

	uc.auditor.Record(companyID, actorID, "order", order.ID, "created", map[string]any{
		"order_number": order.OrderNumber,
		"ordered_qty":  order.OrderedQty.String(),
	})

	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID devuelve la orden del tenant o ErrNotFound.
func (uc *OrderUseCase) GetByID(ctx context.Context, orderID, companyID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByIDAndCompany(orderID, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar orden: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List devuelve las órdenes del tenant paginadas.
func (uc *OrderUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToOrderResponse mapea la entidad al DTO HTTP.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:               o.ID,
		CompanyID:        o.CompanyID,
		ProjectID:        o.ProjectID,
		OrderNumber:      o.OrderNumber,
		SupplierName:     o.SupplierName,
		Status:           o.Status,
		OrderedQty:       o.OrderedQty,
		DeliveredQty:     o.DeliveredQty,
		RemainingQty:     o.RemainingQty,
		DeliveredValue:   o.DeliveredValue,
		TotalAmount:      o.TotalAmount,
		DeliveryProgress: o.DeliveryProgress,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
