// Package billing implementa el cálculo puro del cargo mensual por asientos
// (servicio de dominio, sin I/O). La reconciliación con el gateway de pagos
// vive en la capa de aplicación.
package billing

import "github.com/shopspring/decimal"

// PlanID identificador de plan de suscripción.
type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanStarter    PlanID = "starter"
	PlanPro        PlanID = "pro"
	PlanEnterprise PlanID = "enterprise"
)

// IsValid indica si el plan pertenece a la enumeración.
func (p PlanID) IsValid() bool {
	return p == PlanFree || p == PlanStarter || p == PlanPro || p == PlanEnterprise
}

// Precios por asiento/mes (USD).
var (
	starterSeatPrice = decimal.NewFromInt(49)
	proSeatPrice     = decimal.NewFromInt(99)
)

// starterSeatCap tope duro de asientos facturables en starter. Los asientos
// por encima del tope no se cobran; el bloqueo de crecimiento de asientos es
// responsabilidad del caller (ver CanAddUser).
const starterSeatCap = 5

// enterpriseTier tramo de la escalera de volumen enterprise. max == 0 marca
// el tramo abierto (sin límite superior).
type enterpriseTier struct {
	min, max int
	price    int64
}

// Tarifa blended: una vez alcanzado un tramo, TODOS los asientos se cobran al
// precio de ese tramo (no es tarifa marginal por sub-rango). 20 asientos pagan
// 20*129, no 15*149 + 5*129. Esto produce un total no monotónico en los bordes
// (75 asientos -> 7425, 76 -> 6004): es el diseño de precios vigente, no un bug.
var enterpriseTiers = []enterpriseTier{
	{min: 1, max: 15, price: 149},
	{min: 16, max: 30, price: 129},
	{min: 31, max: 75, price: 99},
	{min: 76, max: 0, price: 79},
}

// EnterprisePricePerUser resuelve el precio por asiento del plan enterprise
// según el tramo que contiene a userCount. Si ningún tramo aplica (no debería
// ocurrir: la escalera cubre 1..inf), cae al precio del último tramo.
func EnterprisePricePerUser(userCount int) decimal.Decimal {
	for _, t := range enterpriseTiers {
		if userCount >= t.min && (t.max == 0 || userCount <= t.max) {
			return decimal.NewFromInt(t.price)
		}
	}
	return decimal.NewFromInt(enterpriseTiers[len(enterpriseTiers)-1].price)
}

// CalculateMonthlyTotal calcula el cargo mensual para un plan y un número de
// asientos facturables. Función pura: el conteo de asientos (solo roles
// facturables activos) es responsabilidad del caller.
func CalculateMonthlyTotal(plan PlanID, userCount int) decimal.Decimal {
	if userCount <= 0 {
		return decimal.Zero
	}
	switch plan {
	case PlanFree:
		return decimal.Zero
	case PlanStarter:
		seats := userCount
		if seats > starterSeatCap {
			seats = starterSeatCap
		}
		return starterSeatPrice.Mul(decimal.NewFromInt(int64(seats)))
	case PlanPro:
		return proSeatPrice.Mul(decimal.NewFromInt(int64(userCount)))
	case PlanEnterprise:
		return EnterprisePricePerUser(userCount).Mul(decimal.NewFromInt(int64(userCount)))
	}
	return decimal.Zero
}

// Límites de plan (-1 = ilimitado), tomados de la tabla de planes comercial.

// MaxInternalUsers máximo de usuarios internos (facturables) del plan.
func MaxInternalUsers(plan PlanID) int {
	switch plan {
	case PlanFree:
		return 2
	case PlanStarter:
		return starterSeatCap
	default:
		return -1
	}
}

// MaxProjects máximo de proyectos activos del plan.
func MaxProjects(plan PlanID) int {
	switch plan {
	case PlanFree:
		return 3
	case PlanStarter:
		return 10
	default:
		return -1
	}
}

// CanAddUser indica si el plan admite un usuario interno más.
func CanAddUser(plan PlanID, currentInternalUsers int) bool {
	max := MaxInternalUsers(plan)
	return max == -1 || currentInternalUsers < max
}

// CanAddProject indica si el plan admite un proyecto más.
func CanAddProject(plan PlanID, currentProjects int) bool {
	max := MaxProjects(plan)
	return max == -1 || currentProjects < max
}
