package entity

import "time"

// Roles del sistema. Los internos cuentan para la facturación por asientos;
// los externos (clientes, proveedores, etc.) son siempre gratuitos.
const (
	RoleOwner         = "owner"
	RoleAdmin         = "admin"
	RoleManager       = "manager"
	RoleAccountant    = "accountant"
	RoleEditor        = "editor"
	RoleMember        = "member"
	RoleClient        = "client"
	RoleSupplier      = "supplier"
	RoleContractor    = "contractor"
	RoleConsultant    = "consultant"
	RoleSubcontractor = "subcontractor"
	RoleViewer        = "viewer"
)

// Profile representa un usuario dentro de una empresa (tenant).
type Profile struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el perfil cuenta como usuario vigente de la empresa.
func (p *Profile) IsActive() bool {
	return p.Status == "active"
}
