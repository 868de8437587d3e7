// Package picking implements the bulk "mark as todo" action on transfer orders.
package picking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pickmate-wms/pickmatego/internal/models"
)

var (
	// ErrNoDraftPickings is returned when a wizard is confirmed without any
	// draft picking in its working set.
	ErrNoDraftPickings = errors.New("no draft picking specified")

	// ErrWizardNotFound is returned for unknown or already-discarded wizards.
	ErrWizardNotFound = errors.New("wizard not found")
)

// Store is the persistence surface the wizard works against
type Store interface {
	PickingsByIDs(ids []int64) ([]models.StockPicking, error)
	// ConfirmDrafts transitions the given pickings from draft to confirmed,
	// skipping any that left the draft state since, and returns the rows it
	// actually transitioned. Must be atomic.
	ConfirmDrafts(ids []int64) ([]models.StockPicking, error)
	SaveWizard(w *models.MarkTodoWizard) error
	GetWizard(id string) (*models.MarkTodoWizard, error)
	DeleteWizard(id string) error
	DeleteWizardsBefore(cutoff time.Time) (int64, error)
}

// WizardView is what the user confirms: the actionable draft subset and the
// informational non-draft remainder.
type WizardView struct {
	WizardID            string                `json:"wizard_id"`
	DraftPickings       []models.StockPicking `json:"draft_pickings"`
	NonDraftPickings    []models.StockPicking `json:"non_draft_pickings"`
	HasNonDraftPickings bool                  `json:"has_non_draft_pickings"`
}

// Service drives the mark-todo wizard lifecycle
type Service struct {
	store       Store
	onConfirmed []func([]models.StockPicking)
}

// NewService creates a wizard service on top of a store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// OnConfirmed registers a listener invoked with every confirmed batch
func (s *Service) OnConfirmed(fn func([]models.StockPicking)) {
	s.onConfirmed = append(s.onConfirmed, fn)
}

// Partition splits pickings into the draft subset and the rest, preserving
// input order. Read-only.
func Partition(pickings []models.StockPicking) (draft, nonDraft []models.StockPicking) {
	for _, p := range pickings {
		if p.IsDraft() {
			draft = append(draft, p)
		} else {
			nonDraft = append(nonDraft, p)
		}
	}
	return draft, nonDraft
}

// Open builds a wizard for the selected pickings: partitions them by state
// and persists the working set for a later Confirm or Cancel.
func (s *Service) Open(userID string, pickingIDs []int64) (*WizardView, error) {
	pickings, err := s.store.PickingsByIDs(pickingIDs)
	if err != nil {
		return nil, err
	}

	draft, nonDraft := Partition(pickings)

	wizard := &models.MarkTodoWizard{
		ID:        uuid.New().String(),
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := wizard.SetDraftIDs(idsOf(draft)); err != nil {
		return nil, err
	}
	if err := wizard.SetNonDraftIDs(idsOf(nonDraft)); err != nil {
		return nil, err
	}
	if err := s.store.SaveWizard(wizard); err != nil {
		return nil, err
	}

	return &WizardView{
		WizardID:            wizard.ID,
		DraftPickings:       draft,
		NonDraftPickings:    nonDraft,
		HasNonDraftPickings: wizard.HasNonDraft,
	}, nil
}

// Confirm transitions every draft picking in the wizard's working set to the
// confirmed ("todo") state and discards the wizard. The non-draft subset is
// never touched. Pickings that left the draft state since Open are skipped.
func (s *Service) Confirm(wizardID string) ([]models.StockPicking, error) {
	wizard, err := s.store.GetWizard(wizardID)
	if err != nil {
		return nil, err
	}

	draftIDs, err := wizard.DraftIDs()
	if err != nil {
		return nil, err
	}
	if len(draftIDs) == 0 {
		return nil, ErrNoDraftPickings
	}

	confirmed, err := s.store.ConfirmDrafts(draftIDs)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteWizard(wizardID); err != nil {
		return nil, err
	}

	if len(confirmed) > 0 {
		for _, fn := range s.onConfirmed {
			fn(confirmed)
		}
	}

	return confirmed, nil
}

// Cancel discards the wizard's working set without touching any picking
func (s *Service) Cancel(wizardID string) error {
	if _, err := s.store.GetWizard(wizardID); err != nil {
		return err
	}
	return s.store.DeleteWizard(wizardID)
}

// Vacuum removes wizards older than the given age, mirroring how transient
// working sets expire when nobody confirms them.
func (s *Service) Vacuum(maxAge time.Duration) (int64, error) {
	return s.store.DeleteWizardsBefore(time.Now().UTC().Add(-maxAge))
}

func idsOf(pickings []models.StockPicking) []int64 {
	ids := make([]int64, 0, len(pickings))
	for _, p := range pickings {
		ids = append(ids, p.ID)
	}
	return ids
}
