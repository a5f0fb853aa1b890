package entity

import "time"

// PositionID identificador de una posición de máquina (mc_pos_id); es la "ubicación" de un movimiento.
type PositionID int64

// MachineID identificador de máquina.
type MachineID int64

// MachineType tipo de máquina al que se asocia un repuesto.
type MachineType struct {
	ID   MachineTypeID
	Name string
}

// Machine máquina de planta, agrupada por grupo y departamento.
type Machine struct {
	ID         MachineID
	Name       string
	GroupName  string
	Department string
	CreatedAt  time.Time
}

// MachinePosition posición concreta dentro de una máquina.
type MachinePosition struct {
	ID        PositionID
	MachineID MachineID
	Name      string
}
