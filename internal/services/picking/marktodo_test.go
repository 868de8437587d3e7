package picking

import (
	"errors"
	"testing"
	"time"

	"github.com/pickmate-wms/pickmatego/internal/models"
)

// memoryStore keeps pickings and wizards in maps for service tests
type memoryStore struct {
	pickings map[int64]*models.StockPicking
	wizards  map[string]*models.MarkTodoWizard
}

func newMemoryStore(pickings ...models.StockPicking) *memoryStore {
	s := &memoryStore{
		pickings: make(map[int64]*models.StockPicking),
		wizards:  make(map[string]*models.MarkTodoWizard),
	}
	for i := range pickings {
		p := pickings[i]
		s.pickings[p.ID] = &p
	}
	return s
}

func (s *memoryStore) PickingsByIDs(ids []int64) ([]models.StockPicking, error) {
	var out []models.StockPicking
	for _, id := range ids {
		if p, ok := s.pickings[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memoryStore) ConfirmDrafts(ids []int64) ([]models.StockPicking, error) {
	var confirmed []models.StockPicking
	for _, id := range ids {
		if p, ok := s.pickings[id]; ok && p.State == models.PickingStateDraft {
			p.State = models.PickingStateConfirmed
			confirmed = append(confirmed, *p)
		}
	}
	return confirmed, nil
}

func (s *memoryStore) SaveWizard(w *models.MarkTodoWizard) error {
	s.wizards[w.ID] = w
	return nil
}

func (s *memoryStore) GetWizard(id string) (*models.MarkTodoWizard, error) {
	if w, ok := s.wizards[id]; ok {
		return w, nil
	}
	return nil, ErrWizardNotFound
}

func (s *memoryStore) DeleteWizard(id string) error {
	delete(s.wizards, id)
	return nil
}

func (s *memoryStore) DeleteWizardsBefore(cutoff time.Time) (int64, error) {
	var n int64
	for id, w := range s.wizards {
		if w.CreatedAt.Before(cutoff) {
			delete(s.wizards, id)
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) state(id int64) string {
	return s.pickings[id].State
}

func mixedPickings() []models.StockPicking {
	return []models.StockPicking{
		{ID: 1, Name: "WH/IN/0001", State: models.PickingStateDraft},
		{ID: 2, Name: "WH/IN/0002", State: models.PickingStateConfirmed},
		{ID: 3, Name: "WH/IN/0003", State: models.PickingStateDraft},
		{ID: 4, Name: "WH/OUT/0004", State: models.PickingStateDone},
	}
}

func TestPartition(t *testing.T) {
	draft, nonDraft := Partition(mixedPickings())

	if len(draft) != 2 {
		t.Fatalf("Expected 2 draft pickings, got %d", len(draft))
	}
	if len(nonDraft) != 2 {
		t.Fatalf("Expected 2 non-draft pickings, got %d", len(nonDraft))
	}
	if len(draft)+len(nonDraft) != 4 {
		t.Error("Subset sizes should sum to input size")
	}

	for _, p := range draft {
		if p.State != models.PickingStateDraft {
			t.Errorf("Draft subset contains %s picking %d", p.State, p.ID)
		}
	}
	for _, p := range nonDraft {
		if p.State == models.PickingStateDraft {
			t.Errorf("Non-draft subset contains draft picking %d", p.ID)
		}
	}
}

func TestOpenPartitionsSelection(t *testing.T) {
	store := newMemoryStore(mixedPickings()...)
	service := NewService(store)

	view, err := service.Open("user-1", []int64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	if len(view.DraftPickings) != 2 || len(view.NonDraftPickings) != 2 {
		t.Errorf("Expected 2/2 partition, got %d/%d",
			len(view.DraftPickings), len(view.NonDraftPickings))
	}
	if !view.HasNonDraftPickings {
		t.Error("HasNonDraftPickings should be true with a non-draft subset")
	}

	// Wizard must be retrievable until confirmed or cancelled
	if _, err := store.GetWizard(view.WizardID); err != nil {
		t.Errorf("Wizard should be persisted: %v", err)
	}
}

func TestOpenAllDraft(t *testing.T) {
	store := newMemoryStore(
		models.StockPicking{ID: 1, State: models.PickingStateDraft},
		models.StockPicking{ID: 2, State: models.PickingStateDraft},
	)
	service := NewService(store)

	view, err := service.Open("user-1", []int64{1, 2})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}
	if view.HasNonDraftPickings {
		t.Error("HasNonDraftPickings should be false without non-draft pickings")
	}
}

func TestConfirmTransitionsDraftsOnly(t *testing.T) {
	store := newMemoryStore(mixedPickings()...)
	service := NewService(store)

	var notified []models.StockPicking
	service.OnConfirmed(func(pickings []models.StockPicking) {
		notified = append(notified, pickings...)
	})

	view, err := service.Open("user-1", []int64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	confirmed, err := service.Confirm(view.WizardID)
	if err != nil {
		t.Fatalf("Failed to confirm wizard: %v", err)
	}
	if len(confirmed) != 2 {
		t.Fatalf("Expected 2 confirmed pickings, got %d", len(confirmed))
	}

	// Draft subset transitioned
	if store.state(1) != models.PickingStateConfirmed {
		t.Errorf("Picking 1 should be confirmed, got %s", store.state(1))
	}
	if store.state(3) != models.PickingStateConfirmed {
		t.Errorf("Picking 3 should be confirmed, got %s", store.state(3))
	}

	// Non-draft subset untouched
	if store.state(2) != models.PickingStateConfirmed {
		t.Errorf("Picking 2 state changed to %s", store.state(2))
	}
	if store.state(4) != models.PickingStateDone {
		t.Errorf("Picking 4 state changed to %s", store.state(4))
	}

	if len(notified) != 2 {
		t.Errorf("Expected 2 notified pickings, got %d", len(notified))
	}

	// Wizard is discarded after confirm
	if _, err := store.GetWizard(view.WizardID); !errors.Is(err, ErrWizardNotFound) {
		t.Error("Wizard should be discarded after confirm")
	}
}

func TestConfirmWithoutDrafts(t *testing.T) {
	store := newMemoryStore(
		models.StockPicking{ID: 2, State: models.PickingStateConfirmed},
		models.StockPicking{ID: 4, State: models.PickingStateDone},
	)
	service := NewService(store)

	view, err := service.Open("user-1", []int64{2, 4})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	if _, err := service.Confirm(view.WizardID); !errors.Is(err, ErrNoDraftPickings) {
		t.Errorf("Expected ErrNoDraftPickings, got %v", err)
	}
}

func TestConfirmSkipsConcurrentlyChangedPickings(t *testing.T) {
	store := newMemoryStore(mixedPickings()...)
	service := NewService(store)

	view, err := service.Open("user-1", []int64{1, 3})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	// Picking 3 leaves draft between Open and Confirm
	store.pickings[3].State = models.PickingStateCancelled

	confirmed, err := service.Confirm(view.WizardID)
	if err != nil {
		t.Fatalf("Failed to confirm wizard: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != 1 {
		t.Errorf("Expected only picking 1 confirmed, got %v", confirmed)
	}
	if store.state(3) != models.PickingStateCancelled {
		t.Errorf("Picking 3 should stay cancelled, got %s", store.state(3))
	}
}

func TestConfirmReportsOnlyOwnTransitions(t *testing.T) {
	store := newMemoryStore(mixedPickings()...)
	service := NewService(store)

	var notified []models.StockPicking
	service.OnConfirmed(func(pickings []models.StockPicking) {
		notified = append(notified, pickings...)
	})

	view, err := service.Open("user-1", []int64{1, 3})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	// Picking 3 is confirmed by someone else between Open and Confirm.
	// It must not be reported as transitioned by this action.
	store.pickings[3].State = models.PickingStateConfirmed

	confirmed, err := service.Confirm(view.WizardID)
	if err != nil {
		t.Fatalf("Failed to confirm wizard: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != 1 {
		t.Errorf("Expected only picking 1 in the result, got %v", confirmed)
	}
	if len(notified) != 1 || notified[0].ID != 1 {
		t.Errorf("Expected only picking 1 notified, got %v", notified)
	}
}

func TestCancelLeavesStatesUnchanged(t *testing.T) {
	store := newMemoryStore(mixedPickings()...)
	service := NewService(store)

	view, err := service.Open("user-1", []int64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	if err := service.Cancel(view.WizardID); err != nil {
		t.Fatalf("Failed to cancel wizard: %v", err)
	}

	if store.state(1) != models.PickingStateDraft || store.state(3) != models.PickingStateDraft {
		t.Error("Cancel must not mutate draft pickings")
	}
	if store.state(2) != models.PickingStateConfirmed || store.state(4) != models.PickingStateDone {
		t.Error("Cancel must not mutate non-draft pickings")
	}

	if _, err := store.GetWizard(view.WizardID); !errors.Is(err, ErrWizardNotFound) {
		t.Error("Wizard should be discarded after cancel")
	}
}

func TestConfirmUnknownWizard(t *testing.T) {
	service := NewService(newMemoryStore())
	if _, err := service.Confirm("missing"); !errors.Is(err, ErrWizardNotFound) {
		t.Errorf("Expected ErrWizardNotFound, got %v", err)
	}
}

func TestVacuum(t *testing.T) {
	store := newMemoryStore(mixedPickings()...)
	service := NewService(store)

	view, err := service.Open("user-1", []int64{1})
	if err != nil {
		t.Fatalf("Failed to open wizard: %v", err)
	}

	// Age the wizard past the cutoff
	store.wizards[view.WizardID].CreatedAt = time.Now().UTC().Add(-2 * time.Hour)

	n, err := service.Vacuum(time.Hour)
	if err != nil {
		t.Fatalf("Failed to vacuum: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 vacuumed wizard, got %d", n)
	}
}
