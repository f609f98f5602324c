package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/siteproc/siteproc-api/internal/domain/billing"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

func total(t *testing.T, plan billing.PlanID, count int) int64 {
	t.Helper()
	return billing.CalculateMonthlyTotal(plan, count).IntPart()
}

// Starter: tope duro de 5 asientos; el sexto y siguientes no se cobran.
func TestCalculateMonthlyTotal_StarterConTope(t *testing.T) {
	assert.EqualValues(t, 5*49, total(t, billing.PlanStarter, 7)) // 245, no 343
	assert.EqualValues(t, 3*49, total(t, billing.PlanStarter, 3))
	assert.EqualValues(t, 5*49, total(t, billing.PlanStarter, 5))
}

// Pro: lineal sin tope.
func TestCalculateMonthlyTotal_ProLineal(t *testing.T) {
	assert.EqualValues(t, 12*99, total(t, billing.PlanPro, 12)) // 1188
	assert.EqualValues(t, 99, total(t, billing.PlanPro, 1))
	assert.EqualValues(t, 500*99, total(t, billing.PlanPro, 500))
}

// Enterprise: tarifa blended por tramo, NO graduada. Con 20 asientos todos se
// cobran a 129 (tramo 16-30), no 15*149 + 5*129.
func TestCalculateMonthlyTotal_EnterpriseBlended(t *testing.T) {
	assert.EqualValues(t, 20*129, total(t, billing.PlanEnterprise, 20)) // 2580
	assert.EqualValues(t, 15*149, total(t, billing.PlanEnterprise, 15))
	assert.EqualValues(t, 16*129, total(t, billing.PlanEnterprise, 16))
	assert.EqualValues(t, 75*99, total(t, billing.PlanEnterprise, 75)) // 7425
}

// El borde 75 -> 76 baja el total (7425 -> 6004): comportamiento de la tabla
// de precios vigente, debe reproducirse exacto.
func TestCalculateMonthlyTotal_EnterpriseCliff(t *testing.T) {
	assert.EqualValues(t, 7425, total(t, billing.PlanEnterprise, 75))
	assert.EqualValues(t, 6004, total(t, billing.PlanEnterprise, 76))
	assert.EqualValues(t, 200*79, total(t, billing.PlanEnterprise, 200))
}

func TestCalculateMonthlyTotal_FreeYCerosNegativos(t *testing.T) {
	assert.True(t, billing.CalculateMonthlyTotal(billing.PlanFree, 50).IsZero())
	assert.True(t, billing.CalculateMonthlyTotal(billing.PlanPro, 0).IsZero())
	assert.True(t, billing.CalculateMonthlyTotal(billing.PlanPro, -3).IsZero())
	assert.True(t, billing.CalculateMonthlyTotal(billing.PlanEnterprise, 0).IsZero())
}

func TestEnterprisePricePerUser_Tramos(t *testing.T) {
	cases := []struct {
		count int
		price int64
	}{
		{1, 149}, {15, 149},
		{16, 129}, {30, 129},
		{31, 99}, {75, 99},
		{76, 79}, {1000, 79},
	}
	for _, c := range cases {
		got := billing.EnterprisePricePerUser(c.count)
		assert.Truef(t, got.Equal(decimal.NewFromInt(c.price)),
			"%d asientos: esperado %d, obtenido %s", c.count, c.price, got)
	}
}

// 4 perfiles facturables + 50 gratuitos en pro: se cobran exactamente 4.
func TestCountBillableSeats_SoloRolesFacturables(t *testing.T) {
	profiles := []*entity.Profile{
		{Role: entity.RoleOwner, Status: "active"},
		{Role: entity.RoleAdmin, Status: "active"},
		{Role: entity.RoleManager, Status: "active"},
		{Role: entity.RoleEditor, Status: "active"},
	}
	for i := 0; i < 50; i++ {
		profiles = append(profiles, &entity.Profile{Role: entity.RoleSupplier, Status: "active"})
	}

	seats := billing.CountBillableSeats(profiles)
	assert.Equal(t, 4, seats)
	assert.EqualValues(t, 4*99, billing.CalculateMonthlyTotal(billing.PlanPro, seats).IntPart())
}

func TestCountBillableSeats_InactivosNoCuentan(t *testing.T) {
	profiles := []*entity.Profile{
		{Role: entity.RoleOwner, Status: "active"},
		{Role: entity.RoleAdmin, Status: "inactive"},
		{Role: entity.RoleViewer, Status: "active"},
	}
	assert.Equal(t, 1, billing.CountBillableSeats(profiles))
}

func TestLimitesDePlan(t *testing.T) {
	assert.True(t, billing.CanAddUser(billing.PlanFree, 1))
	assert.False(t, billing.CanAddUser(billing.PlanFree, 2))
	assert.False(t, billing.CanAddUser(billing.PlanStarter, 5))
	assert.True(t, billing.CanAddUser(billing.PlanPro, 10_000))

	assert.False(t, billing.CanAddProject(billing.PlanFree, 3))
	assert.True(t, billing.CanAddProject(billing.PlanStarter, 9))
	assert.False(t, billing.CanAddProject(billing.PlanStarter, 10))
	assert.True(t, billing.CanAddProject(billing.PlanEnterprise, 10_000))
}
