package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appbilling "github.com/siteproc/siteproc-api/internal/application/billing"
	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	billingdom "github.com/siteproc/siteproc-api/internal/domain/billing"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

// ProfileUseCase gestiona los usuarios de la empresa. Las altas respetan el
// cupo de usuarios internos del plan y todo cambio que afecte asientos
// facturables dispara la reconciliación con el gateway de pagos.
type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	companyRepo repository.CompanyRepository
	billing     *appbilling.BillingUseCase
	auditor     appdelivery.Auditor
	log         *logger.Logger
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	companyRepo repository.CompanyRepository,
	billing *appbilling.BillingUseCase,
	auditor appdelivery.Auditor,
	log *logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		companyRepo: companyRepo,
		billing:     billing,
		auditor:     auditor,
		log:         log,
	}
}

var validRoles = map[string]bool{
	entity.RoleOwner: true, entity.RoleAdmin: true, entity.RoleManager: true,
	entity.RoleAccountant: true, entity.RoleEditor: true, entity.RoleMember: true,
	entity.RoleClient: true, entity.RoleSupplier: true, entity.RoleContractor: true,
	entity.RoleConsultant: true, entity.RoleSubcontractor: true, entity.RoleViewer: true,
}

// CreateUser invita un perfil a la empresa. Solo los roles internos consumen
// cupo del plan; los externos entran sin límite.
func (uc *ProfileUseCase) CreateUser(ctx context.Context, companyID, actorID string, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || !validRoles[req.Role] {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.profileRepo.GetByEmailAndCompany(email, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	if billingdom.IsBillableRole(req.Role) {
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
		internal := billingdom.CountBillableSeats(profiles)
		if !billingdom.CanAddUser(billingdom.PlanID(company.Plan), internal) {
			return nil, domain.ErrPlanLimit
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(profile); err != nil {
		return nil, fmt.Errorf("crear perfil: %w", err)
	}

	uc.auditor.Record(companyID, actorID, "profile", profile.ID, "created", map[string]any{
		"email": profile.Email,
		"role":  profile.Role,
	})
	if billingdom.IsBillableRole(profile.Role) {
		uc.syncSeats(ctx, companyID)
	}

	resp := ToUserResponse(profile)
	return &resp, nil
}

// UpdateRole cambia el rol de un perfil del tenant. Si el cambio cruza la
// frontera facturable/gratuito, la reconciliación de asientos lo refleja.
func (uc *ProfileUseCase) UpdateRole(ctx context.Context, profileID, companyID, actorID string, req dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !validRoles[req.Role] {
		return nil, domain.ErrInvalidInput
	}

	profile, err := uc.profileRepo.GetByIDAndCompany(profileID, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar perfil: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	// El owner fundador no se degrada por esta vía.
	if profile.Role == entity.RoleOwner && req.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}

	previous := profile.Role
	if err := uc.profileRepo.UpdateRole(profileID, companyID, req.Role); err != nil {
		return nil, fmt.Errorf("actualizar rol: %w", err)
	}
	profile.Role = req.Role

	uc.auditor.Record(companyID, actorID, "profile", profileID, "role_changed", map[string]any{
		"from": previous,
		"to":   req.Role,
	})
	if billingdom.IsBillableRole(previous) != billingdom.IsBillableRole(req.Role) {
		uc.syncSeats(ctx, companyID)
	}

	resp := ToUserResponse(profile)
	return &resp, nil
}

// List devuelve los perfiles del tenant.
func (uc *ProfileUseCase) List(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	profiles, err := uc.profileRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("listar perfiles: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToUserResponse(p))
	}
	return out, nil
}

// syncSeats best-effort: el alta o cambio de rol ya está commiteado, el fallo
// de la reconciliación se loggea y el próximo sync la corrige.
func (uc *ProfileUseCase) syncSeats(ctx context.Context, companyID string) {
	if _, err := uc.billing.SyncSeats(ctx, companyID); err != nil {
		uc.log.Error().Err(err).
			Str("company_id", companyID).
			Msg("reconciliación de asientos falló tras cambio de perfiles")
	}
}

// ToUserResponse mapea la entidad al DTO HTTP (nunca expone el hash).
func ToUserResponse(p *entity.Profile) dto.UserResponse {
	return dto.UserResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
