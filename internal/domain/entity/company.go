package entity

import "time"

// Company representa un tenant: toda fila de datos pertenece a exactamente una empresa.
type Company struct {
	ID        string
	Name      string
	Plan      string // free | starter | pro | enterprise
	Status    string // active | suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
