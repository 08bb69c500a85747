package engine

import (
	"sync"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// MemStore is the thread-safe, insertion-ordered user directory.
// Its contents live only as long as the process.
type MemStore struct {
	mu    sync.RWMutex
	users []schema.User
	// lastID is the highest id ever handed out, so ids of deleted users are never reused.
	lastID int
}

var _ UserStore = (*MemStore)(nil)

// NewMemStore initializes a store.
// It accepts existing records (from a seed) whose ids are kept as given.
func NewMemStore(initial []schema.User) *MemStore {
	m := &MemStore{users: make([]schema.User, 0, len(initial))}
	for _, u := range initial {
		m.users = append(m.users, u)
		if u.ID > m.lastID {
			m.lastID = u.ID
		}
	}
	return m
}

func (m *MemStore) List() []schema.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]schema.User, len(m.users))
	copy(list, m.users)
	return list
}

func (m *MemStore) Get(id int) (schema.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return schema.User{}, ErrUserNotFound
	}
	return m.users[i], nil
}

func (m *MemStore) FindByEmail(email string) (schema.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return schema.User{}, ErrUserNotFound
}

func (m *MemStore) Add(candidate schema.User) (schema.User, error) {
	if err := ValidateUser(candidate); err != nil {
		return schema.User{}, err
	}

	// Reading the max id and appending happen under one lock.
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID = max(m.lastID, m.maxID()) + 1
	candidate.ID = m.lastID
	m.users = append(m.users, candidate)
	return candidate, nil
}

func (m *MemStore) UpdateJob(id int, job string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrUserNotFound
	}
	if err := ValidateJob(job); err != nil {
		return err
	}
	m.users[i].Job = job
	return nil
}

func (m *MemStore) Remove(id int) (schema.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return schema.User{}, ErrUserNotFound
	}
	removed := m.users[i]
	m.users = append(m.users[:i], m.users[i+1:]...)
	return removed, nil
}

// indexOf MUST be called while holding m.mu.Lock or m.mu.RLock.
func (m *MemStore) indexOf(id int) int {
	for i, u := range m.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// maxID MUST be called while holding m.mu.Lock or m.mu.RLock.
func (m *MemStore) maxID() int {
	highest := 0
	for _, u := range m.users {
		highest = max(highest, u.ID)
	}
	return highest
}
