package entity

import "time"

// PersonalData datos de despacho y facturación del usuario (uno por cuenta).
type PersonalData struct {
	UserID     string
	FullName   string
	LastName   string
	Phone      string
	Address    string
	City       string
	Country    string
	PostalCode string
	RUT        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
