// internal/models/transaction.go
package models

import "time"

// Transaction is one recorded sale of a unit in an apartment complex.
// Price is in the smallest whole currency unit.
type Transaction struct {
	ID           int64     `json:"id"`
	ApartmentID  int64     `json:"apartmentId"`
	ContractDate time.Time `json:"contractDate"`
	Price        int64     `json:"price"`
	AreaM2       float64   `json:"areaM2"`
}
