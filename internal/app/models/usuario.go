package models

import "time"

// Usuario defines the user model based on the 'usuarios' table
type Usuario struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                  // Unique identifier for the usuario
	Email       string     `json:"email" db:"email" example:"maria@escola.edu.br"`          // Login email address
	Senha       string     `json:"-" db:"senha"`                                            // Hashed password (excluded from JSON)
	Nome        string     `json:"nome" db:"nome" example:"Maria Souza"`                    // Full name
	Papel       Papel      `json:"papel" db:"papel" example:"PROFESSOR"`                    // Access role
	Ativo       bool       `json:"ativo" db:"ativo" example:"true"`                         // Whether the account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`                               // Timestamp when the usuario was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`                               // Timestamp when the usuario was last updated
	UltimoLogin *time.Time `json:"ultimoLogin,omitempty" db:"ultimo_login"`                 // Timestamp of the last login (nullable)
}
