package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// MarkTodoWizard is the transient working set for the "mark as todo" bulk
// action. It partitions a user's selection of pickings into the draft subset
// (actionable) and the non-draft remainder (informational only). Rows are
// short-lived: confirm or cancel deletes them, a janitor vacuums leftovers.
type MarkTodoWizard struct {
	ID                 string         `gorm:"primaryKey;type:uuid" json:"id"`
	DraftPickingIDs    datatypes.JSON `json:"draft_picking_ids"`
	NonDraftPickingIDs datatypes.JSON `json:"non_draft_picking_ids"`
	HasNonDraft        bool           `json:"has_non_draft_pickings"`
	CreatedBy          string         `gorm:"index" json:"created_by"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
}

func (MarkTodoWizard) TableName() string {
	return "mark_todo_wizard"
}

// SetDraftIDs stores the draft subset as a JSON array
func (w *MarkTodoWizard) SetDraftIDs(ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	w.DraftPickingIDs = datatypes.JSON(data)
	return nil
}

// SetNonDraftIDs stores the non-draft subset and derives HasNonDraft
func (w *MarkTodoWizard) SetNonDraftIDs(ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	w.NonDraftPickingIDs = datatypes.JSON(data)
	w.HasNonDraft = len(ids) > 0
	return nil
}

// DraftIDs decodes the stored draft subset
func (w *MarkTodoWizard) DraftIDs() ([]int64, error) {
	return decodeIDs(w.DraftPickingIDs)
}

// NonDraftIDs decodes the stored non-draft subset
func (w *MarkTodoWizard) NonDraftIDs() ([]int64, error) {
	return decodeIDs(w.NonDraftPickingIDs)
}

func decodeIDs(data datatypes.JSON) ([]int64, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
