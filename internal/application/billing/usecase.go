package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	billingdom "github.com/siteproc/siteproc-api/internal/domain/billing"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

// BillingUseCase calcula asientos facturables y mantiene la suscripción de la
// empresa alineada con ellos. El conteo siempre parte de los perfiles vigentes
// en BD, nunca de un contador cacheado.
type BillingUseCase struct {
	companyRepo      repository.CompanyRepository
	profileRepo      repository.ProfileRepository
	subscriptionRepo repository.SubscriptionRepository
	gateway          SubscriptionGateway
	minSeats         int
	log              *logger.Logger
}

// NewBillingUseCase construye el caso de uso. minSeats es el piso de asientos
// reportado al gateway (al menos 1 aunque no haya facturables).
func NewBillingUseCase(
	companyRepo repository.CompanyRepository,
	profileRepo repository.ProfileRepository,
	subscriptionRepo repository.SubscriptionRepository,
	gateway SubscriptionGateway,
	minSeats int,
	log *logger.Logger,
) *BillingUseCase {
	if minSeats < 1 {
		minSeats = 1
	}
	return &BillingUseCase{
		companyRepo:      companyRepo,
		profileRepo:      profileRepo,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		minSeats:         minSeats,
		log:              log,
	}
}

// Breakdown clasifica los perfiles del tenant por rol en facturables y
// gratuitos. Los perfiles inactivos no cuentan en ninguna de las dos columnas.
func (uc *BillingUseCase) Breakdown(ctx context.Context, companyID string) (*dto.UserBreakdownResponse, error) {
	profiles, err := uc.profileRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("listar perfiles: %w", err)
	}

	out := &dto.UserBreakdownResponse{ByRole: map[string]int{}}
	for _, p := range profiles {
		if !p.IsActive() {
			continue
		}
		out.ByRole[p.Role]++
		out.Total++
		if billingdom.IsBillableRole(p.Role) {
			out.Billable++
		} else {
			out.Free++
		}
	}
	return out, nil
}

// Preview calcula el cargo mensual que correspondería hoy, sin persistir nada
// ni tocar el gateway.
func (uc *BillingUseCase) Preview(ctx context.Context, companyID string) (*dto.BillingPreviewResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	profiles, err := uc.profileRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("listar perfiles: %w", err)
	}

	plan := billingdom.PlanID(company.Plan)
	seats := billingdom.CountBillableSeats(profiles)

	return &dto.BillingPreviewResponse{
		Plan:          company.Plan,
		BillableSeats: seats,
		PricePerSeat:  pricePerSeat(plan, seats),
		MonthlyTotal:  billingdom.CalculateMonthlyTotal(plan, seats),
	}, nil
}

// SyncSeats reconcilia la cantidad de asientos con el gateway y persiste el
// resultado en la suscripción local. Los planes free no reportan asientos.
// Se invoca tras cada alta de usuario o cambio de rol.
func (uc *BillingUseCase) SyncSeats(ctx context.Context, companyID string) (*dto.BillingSyncResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	plan := billingdom.PlanID(company.Plan)
	if plan == billingdom.PlanFree {
		return &dto.BillingSyncResponse{
			Synced:       false,
			Seats:        0,
			MonthlyTotal: decimal.Zero,
			Message:      "el plan free no factura asientos",
		}, nil
	}

	profiles, err := uc.profileRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("listar perfiles: %w", err)
	}

	billable := billingdom.CountBillableSeats(profiles)
	// El gateway nunca recibe cero: una suscripción paga mantiene al menos
	// el piso configurado de asientos.
	seats := billable
	if seats < uc.minSeats {
		seats = uc.minSeats
	}
	total := billingdom.CalculateMonthlyTotal(plan, seats)

	if err := uc.gateway.UpdateSeatQuantity(ctx, companyID, seats); err != nil {
		return nil, fmt.Errorf("reportar asientos al gateway: %w", err)
	}

	now := time.Now()
	sub, err := uc.subscriptionRepo.GetByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar suscripción: %w", err)
	}
	if sub == nil {
		sub = &entity.Subscription{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Status:    "active",
			CreatedAt: now,
		}
	}
	sub.Plan = company.Plan
	sub.Seats = seats
	sub.MonthlyTotal = total
	sub.UpdatedAt = now

	if err := uc.subscriptionRepo.Upsert(sub); err != nil {
		return nil, fmt.Errorf("guardar suscripción: %w", err)
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("plan", company.Plan).
		Int("billable", billable).
		Int("seats", seats).
		Str("monthly_total", total.String()).
		Msg("asientos reconciliados con el gateway")

	return &dto.BillingSyncResponse{
		Synced:       true,
		Seats:        seats,
		MonthlyTotal: total,
	}, nil
}

// pricePerSeat precio unitario informativo del preview. En enterprise depende
// del tramo alcanzado por el conteo.
func pricePerSeat(plan billingdom.PlanID, seats int) decimal.Decimal {
	switch plan {
	case billingdom.PlanStarter:
		return decimal.NewFromInt(49)
	case billingdom.PlanPro:
		return decimal.NewFromInt(99)
	case billingdom.PlanEnterprise:
		return billingdom.EnterprisePricePerUser(seats)
	default:
		return decimal.Zero
	}
}
