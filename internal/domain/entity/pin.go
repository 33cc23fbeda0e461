package entity

import "time"

// Pin código canjeable emitido por el proveedor en la captura.
// Es inmutable salvo Usado, que solo puede pasar de false a true.
type Pin struct {
	ID          string
	PurchaseID  string
	OwnerID     string
	ProductCode string
	ProductName string
	Serial      string
	Key         string
	Usado       bool
	CreatedAt   time.Time
	UsedAt      *time.Time
}

// MarkUsed marca el pin como canjeado. Devuelve false si ya lo estaba.
func (p *Pin) MarkUsed(now time.Time) bool {
	if p.Usado {
		return false
	}
	p.Usado = true
	p.UsedAt = &now
	return true
}
