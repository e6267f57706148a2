package photo

import (
	"context"
	"sort"
	"sync"
)

// Repository holds photo metadata. The file content itself lives in the
// storage backend.
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByRoom(ctx context.Context, roomID int) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

type memoryRepository struct {
	mu     sync.RWMutex
	photos map[string]*Photo
}

// NewMemoryRepository creates an in-process metadata repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{photos: make(map[string]*Photo)}
}

func (r *memoryRepository) Create(ctx context.Context, p *Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.photos[p.ID] = p
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	snapshot := *p
	return &snapshot, nil
}

func (r *memoryRepository) ListByRoom(ctx context.Context, roomID int) ([]*Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var photos []*Photo
	for _, p := range r.photos {
		if p.RoomID == roomID {
			snapshot := *p
			photos = append(photos, &snapshot)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].CreatedAt.Before(photos[j].CreatedAt) })
	return photos, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}
