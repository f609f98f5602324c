package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	billingdom "github.com/siteproc/siteproc-api/internal/domain/billing"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de empresa y login.
type AuthUseCase struct {
	profileRepo      repository.ProfileRepository
	companyRepo      repository.CompanyRepository
	subscriptionRepo repository.SubscriptionRepository
	jwtCfg           JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	profileRepo repository.ProfileRepository,
	companyRepo repository.CompanyRepository,
	subscriptionRepo repository.SubscriptionRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		profileRepo:      profileRepo,
		companyRepo:      companyRepo,
		subscriptionRepo: subscriptionRepo,
		jwtCfg:           jwtCfg,
	}
}

// Register crea una empresa nueva en plan free con su usuario owner y la
// suscripción inicial. Devuelve ErrEmailAlreadyExists si el email ya está
// registrado en cualquier empresa (el email identifica al usuario en login).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.CompanyName) == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.profileRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.CompanyName),
		Plan:      string(billingdom.PlanFree),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("crear empresa: %w", err)
	}

	name := in.Name
	if name == "" {
		name = email
	}
	owner := &entity.Profile{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleOwner,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(owner); err != nil {
		return nil, fmt.Errorf("crear owner: %w", err)
	}

	sub := &entity.Subscription{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Plan:         company.Plan,
		Seats:        0,
		MonthlyTotal: decimal.Zero,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.subscriptionRepo.Upsert(sub); err != nil {
		return nil, fmt.Errorf("crear suscripción: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, owner.ID, owner.CompanyID, owner.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(owner)}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !profile.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.CompanyID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(profile)}, nil
}

func toUserResponse(p *entity.Profile) dto.UserResponse {
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
