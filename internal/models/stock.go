package models

import (
	"time"
)

// Picking lifecycle states as Odoo reports them.
const (
	PickingStateDraft     = "draft"
	PickingStateWaiting   = "waiting"
	PickingStateConfirmed = "confirmed"
	PickingStateAssigned  = "assigned"
	PickingStateDone      = "done"
	PickingStateCancelled = "cancel"
)

// StockLocation mirrors 'stock.location'.
// Barcode is the opaque value printed on location labels.
type StockLocation struct {
	ID           int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string `json:"name"`
	CompleteName string `gorm:"index" json:"complete_name"` // "WH/Stock/Shelf 1"
	Barcode      string `gorm:"uniqueIndex" json:"barcode"`
	Usage        string `json:"usage"`       // internal, supplier, customer...
	LocationID   *int64 `json:"location_id"` // Parent Location
	Active       bool   `gorm:"default:true" json:"active"`

	// Sync Meta
	LastSyncedAt time.Time `json:"last_synced_at"`

	// Relations
	Parent   *StockLocation  `gorm:"foreignKey:LocationID" json:"parent,omitempty"`
	Children []StockLocation `gorm:"foreignKey:LocationID" json:"children,omitempty"`
}

func (StockLocation) TableName() string {
	return "stock_location"
}

// StockPicking mirrors 'stock.picking' (Transfer Orders)
type StockPicking struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string    `gorm:"uniqueIndex" json:"name"` // WH/IN/0001
	State         string    `gorm:"index" json:"state"`      // draft, waiting, confirmed, assigned, done, cancel
	LocationID    *int64    `json:"location_id"`             // Source
	Origin        string    `json:"origin"`                  // Source Document (e.g. SO number)
	Date          time.Time `json:"date"`
	ScheduledDate time.Time `json:"scheduled_date"`
	BackorderID   *int64    `gorm:"index" json:"backorder_id"` // Picking this one covers the remainder of

	// Sync Meta
	WriteDate    time.Time `gorm:"index" json:"write_date"` // Odoo-side modification time, sync watermark
	LastSyncedAt time.Time `json:"last_synced_at"`

	// Relations
	Location  *StockLocation `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Backorder *StockPicking  `gorm:"foreignKey:BackorderID" json:"backorder,omitempty"`
}

func (StockPicking) TableName() string {
	return "stock_picking"
}

// IsDraft reports whether the picking is still in its initial, unconfirmed stage.
func (p *StockPicking) IsDraft() bool {
	return p.State == PickingStateDraft
}
