package odoo

import (
	"log"
	"time"

	"github.com/pickmate-wms/pickmatego/internal/config"
	"github.com/pickmate-wms/pickmatego/internal/database"
	"github.com/pickmate-wms/pickmatego/internal/models"
	"gorm.io/gorm/clause"
)

// Odoo serializes datetimes as plain strings in this layout
const odooTimeLayout = "2006-01-02 15:04:05"

// SyncService orchestrates synchronization between Odoo and the local mirror
type SyncService struct {
	client *Client
	db     *database.DB
	cfg    config.OdooConfig
	stop   chan struct{}
}

// NewSyncService creates a new synchronization service
func NewSyncService(db *database.DB, cfg config.OdooConfig) *SyncService {
	return &SyncService{
		client: NewClient(cfg.URL, cfg.Database, cfg.Username, cfg.Password),
		db:     db,
		cfg:    cfg,
		stop:   make(chan struct{}),
	}
}

// Enabled reports whether an upstream Odoo is configured
func (s *SyncService) Enabled() bool {
	return s.cfg.URL != ""
}

// Start begins the background synchronization loop
func (s *SyncService) Start() {
	if !s.Enabled() {
		log.Println("Odoo Sync disabled: ODOO_URL not configured")
		return
	}

	go func() {
		log.Println("📡 Odoo Sync Service started")

		// Authenticate first
		if _, err := s.client.Authenticate(); err != nil {
			log.Printf("❌ Odoo authentication failed: %v", err)
			return
		}

		// Initial sync delay
		time.Sleep(5 * time.Second)
		s.runFullSync()

		interval := time.Duration(s.cfg.SyncInterval) * time.Minute
		if s.cfg.SyncInterval <= 0 {
			interval = 15 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runFullSync()
			case <-s.stop:
				log.Println("🛑 Odoo Sync Service stopped")
				return
			}
		}
	}()
}

// Stop halts the service
func (s *SyncService) Stop() {
	close(s.stop)
}

// runFullSync runs all sync operations
func (s *SyncService) runFullSync() {
	log.Println("🔄 Odoo: Starting full sync...")

	// Locations first, pickings reference them
	s.syncLocations()
	s.syncPickings()

	log.Println("✅ Odoo: Full sync completed")
}

// locationRecord is the wire shape of 'stock.location'. Text fields arrive as
// false when empty and the parent as an [id, name] pair, hence the Odoo types.
type locationRecord struct {
	ID           int64               `json:"id"`
	Name         models.OdooString   `json:"name"`
	CompleteName models.OdooString   `json:"complete_name"`
	Barcode      models.OdooString   `json:"barcode"`
	Usage        models.OdooString   `json:"usage"`
	LocationID   models.OdooRelation `json:"location_id"`
	Active       bool                `json:"active"`
}

func (rec locationRecord) toModel() models.StockLocation {
	return models.StockLocation{
		ID:           rec.ID,
		Name:         rec.Name.String(),
		CompleteName: rec.CompleteName.String(),
		Barcode:      rec.Barcode.String(),
		Usage:        rec.Usage.String(),
		LocationID:   rec.LocationID.IDOrNil(),
		Active:       rec.Active,
		LastSyncedAt: time.Now(),
	}
}

// syncLocations pulls location data from Odoo directly into 'stock_location' table.
// Inactive locations are mirrored too: pickings may still reference them as
// source, and the browse endpoint filters on the active column instead.
func (s *SyncService) syncLocations() {
	log.Println("📍 Odoo: Syncing Locations...")

	domain := []interface{}{
		"|",
		[]interface{}{"active", "=", true},
		[]interface{}{"active", "=", false},
	}

	var records []locationRecord
	err := s.client.SearchRead("stock.location", domain, []string{
		"name", "complete_name", "barcode", "usage", "location_id", "active",
	}, 1000, 0, &records)

	if err != nil {
		log.Printf("❌ Odoo Sync Error (Locations): %v", err)
		return
	}

	if len(records) == 0 {
		return
	}

	count := 0
	for _, rec := range records {
		l := rec.toModel()

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&l).Error; err != nil {
			log.Printf("Failed to save location %d: %v", l.ID, err)
		} else {
			count++
		}
	}

	log.Printf("✅ Odoo: Updated %d locations", count)
}

// pickingRecord is the wire shape of 'stock.picking'
type pickingRecord struct {
	ID            int64               `json:"id"`
	Name          models.OdooString   `json:"name"`
	State         models.OdooString   `json:"state"`
	LocationID    models.OdooRelation `json:"location_id"`
	Origin        models.OdooString   `json:"origin"`
	Date          models.OdooString   `json:"date"`
	ScheduledDate models.OdooString   `json:"scheduled_date"`
	BackorderID   models.OdooRelation `json:"backorder_id"`
	WriteDate     models.OdooString   `json:"write_date"`
}

func (rec pickingRecord) toModel() models.StockPicking {
	return models.StockPicking{
		ID:            rec.ID,
		Name:          rec.Name.String(),
		State:         rec.State.String(),
		LocationID:    rec.LocationID.IDOrNil(),
		Origin:        rec.Origin.String(),
		Date:          parseOdooTime(rec.Date),
		ScheduledDate: parseOdooTime(rec.ScheduledDate),
		BackorderID:   rec.BackorderID.IDOrNil(),
		WriteDate:     parseOdooTime(rec.WriteDate),
		LastSyncedAt:  time.Now(),
	}
}

// syncWatermark formats an incremental sync cursor for an Odoo domain.
// A zero time (empty mirror) falls back to an epoch that predates any record.
func syncWatermark(last time.Time) string {
	if last.IsZero() {
		return "2000-01-01 00:00:00"
	}
	return last.UTC().Format(odooTimeLayout)
}

// parseOdooTime converts an Odoo datetime string, zero time when empty or unparsable
func parseOdooTime(value models.OdooString) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(odooTimeLayout, value.String(), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// syncPickings pulls transfer orders from Odoo into 'stock_picking' table
func (s *SyncService) syncPickings() {
	log.Println("🚚 Odoo: Syncing Pickings...")

	// Incremental: only records written since the newest Odoo write_date seen
	// locally. Watermarking on our own clock would skip rows modified upstream
	// during a sync window.
	var lastPicking models.StockPicking
	s.db.Order("write_date DESC").First(&lastPicking)

	domain := []interface{}{
		[]interface{}{"write_date", ">", syncWatermark(lastPicking.WriteDate)},
	}

	var records []pickingRecord
	err := s.client.SearchRead("stock.picking", domain, []string{
		"name", "state", "location_id", "origin", "date", "scheduled_date", "backorder_id", "write_date",
	}, 1000, 0, &records)

	if err != nil {
		log.Printf("❌ Odoo Sync Error (Pickings): %v", err)
		return
	}

	if len(records) == 0 {
		return
	}

	count := 0
	for _, rec := range records {
		p := rec.toModel()

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&p).Error; err != nil {
			log.Printf("Failed to save picking %d: %v", p.ID, err)
		} else {
			count++
		}
	}

	log.Printf("✅ Odoo: Updated %d pickings", count)
}

// PushConfirm mirrors a local draft->todo transition back to Odoo by invoking
// action_confirm on the picking IDs. Best effort: a failure is logged, the
// local transition stands and the next sync pass reconciles.
func (s *SyncService) PushConfirm(pickingIDs []int64) {
	if !s.Enabled() || len(pickingIDs) == 0 {
		return
	}

	if err := s.client.CallMethod("stock.picking", "action_confirm", pickingIDs); err != nil {
		log.Printf("❌ Odoo: action_confirm push failed for %v: %v", pickingIDs, err)
		return
	}

	log.Printf("✅ Odoo: Confirmed %d pickings upstream", len(pickingIDs))
}
