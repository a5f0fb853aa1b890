package dto

import "time"

// EmployeeRequest body para crear o actualizar un empleado.
type EmployeeRequest struct {
	ID         string `json:"amann_id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Level      string `json:"level"`
	Active     *bool  `json:"active,omitempty"`
	Address    string `json:"address"`
	Phone      string `json:"phone_number"`
	ShiftStart string `json:"shift_start"`
	ShiftEnd   string `json:"shift_end"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// EmployeeResponse empleado.
type EmployeeResponse struct {
	ID         string    `json:"amann_id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Level      string    `json:"level"`
	Active     bool      `json:"active"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone_number"`
	ShiftStart string    `json:"shift_start"`
	ShiftEnd   string    `json:"shift_end"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MachineTypeRequest body para crear un tipo de máquina.
type MachineTypeRequest struct {
	Name string `json:"name"`
}

// MachineTypeResponse tipo de máquina.
type MachineTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MachineRequest body para crear una máquina.
type MachineRequest struct {
	Name       string `json:"name"`
	GroupName  string `json:"group_name"`
	Department string `json:"department"`
}

// MachineResponse máquina.
type MachineResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	GroupName  string    `json:"group_name"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

// PositionRequest body para crear una posición de máquina.
type PositionRequest struct {
	MachineID int64  `json:"machine_id"`
	Name      string `json:"mc_pos"`
}

// PositionResponse posición de máquina.
type PositionResponse struct {
	ID        int64  `json:"id"`
	MachineID int64  `json:"machine_id"`
	Name      string `json:"mc_pos"`
}
