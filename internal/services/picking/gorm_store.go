package picking

import (
	"errors"
	"time"

	"github.com/pickmate-wms/pickmatego/internal/database"
	"github.com/pickmate-wms/pickmatego/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists pickings and wizard working sets through the local mirror
type GormStore struct {
	db *database.DB
}

// NewGormStore creates the database-backed store
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// PickingsByIDs loads the selected pickings, source location included
func (g *GormStore) PickingsByIDs(ids []int64) ([]models.StockPicking, error) {
	var pickings []models.StockPicking
	if len(ids) == 0 {
		return pickings, nil
	}
	err := g.db.Preload("Location").Where("id IN ?", ids).Find(&pickings).Error
	return pickings, err
}

// ConfirmDrafts flips still-draft pickings to confirmed in a single guarded
// update. RETURNING hands back exactly the rows this statement touched, so
// pickings confirmed by anyone else never leak into the result.
func (g *GormStore) ConfirmDrafts(ids []int64) ([]models.StockPicking, error) {
	var confirmed []models.StockPicking
	err := g.db.Model(&confirmed).
		Clauses(clause.Returning{}).
		Where("id IN ? AND state = ?", ids, models.PickingStateDraft).
		Update("state", models.PickingStateConfirmed).Error
	return confirmed, err
}

// SaveWizard persists a wizard working set
func (g *GormStore) SaveWizard(w *models.MarkTodoWizard) error {
	return g.db.Create(w).Error
}

// GetWizard loads a wizard by ID
func (g *GormStore) GetWizard(id string) (*models.MarkTodoWizard, error) {
	var wizard models.MarkTodoWizard
	if err := g.db.First(&wizard, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWizardNotFound
		}
		return nil, err
	}
	return &wizard, nil
}

// DeleteWizard discards a wizard working set
func (g *GormStore) DeleteWizard(id string) error {
	return g.db.Delete(&models.MarkTodoWizard{}, "id = ?", id).Error
}

// DeleteWizardsBefore vacuums abandoned wizards
func (g *GormStore) DeleteWizardsBefore(cutoff time.Time) (int64, error) {
	res := g.db.Delete(&models.MarkTodoWizard{}, "created_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
