package entity

import "time"

// EmployeeID código de empleado (amann_id).
type EmployeeID string

// Estados de empleado.
const (
	EmployeeStatusWorking  = "working"
	EmployeeStatusResigned = "resigned"
)

// Employee empleado que ejecuta movimientos de bodega.
type Employee struct {
	ID         EmployeeID
	Name       string
	Title      string
	Level      string
	Active     bool
	Address    string
	Phone      string
	ShiftStart string // HH:MM
	ShiftEnd   string // HH:MM
	Department string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
