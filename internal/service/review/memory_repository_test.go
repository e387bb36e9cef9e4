package review

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// memoryRepository is an in-memory Repository. Transactions run one at a
// time under a mutex and their writes are applied only when fn succeeds.
type memoryRepository struct {
	mu       sync.Mutex
	owners   map[uuid.UUID]uuid.UUID // wordlist -> user
	states   map[uuid.UUID]domain.WordState
	progress map[uuid.UUID]domain.WordlistProgress

	saveErr   error
	saveCalls int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		owners:   make(map[uuid.UUID]uuid.UUID),
		states:   make(map[uuid.UUID]domain.WordState),
		progress: make(map[uuid.UUID]domain.WordlistProgress),
	}
}

// addWordlist seeds a wordlist owned by userID and returns its progress.
func (m *memoryRepository) addWordlist(userID uuid.UUID, stage int) domain.WordlistProgress {
	p := domain.NewWordlistProgress(uuid.New(), userID)
	p.Stage = stage
	m.owners[p.WordlistID] = userID
	m.progress[p.WordlistID] = p
	return p
}

func (m *memoryRepository) addWord(state domain.WordState) {
	m.states[state.WordID] = state
}

func (m *memoryRepository) state(id uuid.UUID) domain.WordState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[id]
}

func (m *memoryRepository) wordlistProgress(id uuid.UUID) domain.WordlistProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress[id].Clone()
}

func (m *memoryRepository) LoadWordState(ctx context.Context, userID, wordID uuid.UUID) (domain.WordState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadWordState(userID, wordID)
}

func (m *memoryRepository) loadWordState(userID, wordID uuid.UUID) (domain.WordState, error) {
	s, ok := m.states[wordID]
	if !ok || m.owners[s.WordlistID] != userID {
		return domain.WordState{}, ErrWordNotFound
	}
	return s, nil
}

func (m *memoryRepository) LoadWordlistProgress(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) (domain.WordlistProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadProgress(userID, wordlistID)
}

func (m *memoryRepository) loadProgress(userID, wordlistID uuid.UUID) (domain.WordlistProgress, error) {
	p, ok := m.progress[wordlistID]
	if !ok || p.UserID != userID {
		return domain.WordlistProgress{}, ErrWordlistNotFound
	}
	return p.Clone(), nil
}

func (m *memoryRepository) ListWordStates(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.WordState
	for _, s := range m.states {
		if m.owners[s.WordlistID] == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryRepository) SaveBatch(
	ctx context.Context,
	states []domain.WordState,
	progress *domain.WordlistProgress,
) error {
	return errors.New("SaveBatch must run inside RunInTransaction")
}

func (m *memoryRepository) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo Repository) error,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{parent: m}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, s := range tx.states {
		m.states[s.WordID] = s
	}
	if tx.progress != nil {
		m.progress[tx.progress.WordlistID] = tx.progress.Clone()
	}
	return nil
}

// memoryTx buffers writes of one transaction. The parent mutex is held.
type memoryTx struct {
	parent   *memoryRepository
	states   []domain.WordState
	progress *domain.WordlistProgress
}

func (t *memoryTx) LoadWordState(ctx context.Context, userID, wordID uuid.UUID) (domain.WordState, error) {
	return t.parent.loadWordState(userID, wordID)
}

func (t *memoryTx) LoadWordlistProgress(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) (domain.WordlistProgress, error) {
	return t.parent.loadProgress(userID, wordlistID)
}

func (t *memoryTx) ListWordStates(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error) {
	var out []domain.WordState
	for _, s := range t.parent.states {
		if t.parent.owners[s.WordlistID] == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *memoryTx) SaveBatch(
	ctx context.Context,
	states []domain.WordState,
	progress *domain.WordlistProgress,
) error {
	t.parent.saveCalls++
	if t.parent.saveErr != nil {
		return t.parent.saveErr
	}
	t.states = append(t.states, states...)
	if progress != nil {
		p := progress.Clone()
		t.progress = &p
	}
	return nil
}

func (t *memoryTx) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo Repository) error,
) error {
	return fn(ctx, t)
}
