package billing

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// BillableRoles roles internos que cuentan para el cargo mensual.
var BillableRoles = []string{
	entity.RoleOwner,
	entity.RoleAdmin,
	entity.RoleManager,
	entity.RoleAccountant,
	entity.RoleEditor,
	entity.RoleMember,
}

// FreeRoles roles externos que jamás se cobran, en cualquier plan y con
// cualquier nivel de uso.
var FreeRoles = []string{
	entity.RoleClient,
	entity.RoleSupplier,
	entity.RoleContractor,
	entity.RoleConsultant,
	entity.RoleSubcontractor,
	entity.RoleViewer,
}

// IsBillableRole indica si el rol cuenta como asiento facturable.
func IsBillableRole(role string) bool {
	for _, r := range BillableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CountBillableSeats cuenta los perfiles activos con rol facturable.
// Los inactivos no cuentan aunque su rol sea interno.
func CountBillableSeats(profiles []*entity.Profile) int {
	n := 0
	for _, p := range profiles {
		if p.IsActive() && IsBillableRole(p.Role) {
			n++
		}
	}
	return n
}
