package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// TemplateStore is an in-memory ports.TemplateStore with the same slug and
// collision semantics as the file store.
type TemplateStore struct {
	mu   sync.Mutex
	byID map[string]domain.Template
}

// NewTemplateStore creates an empty store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{byID: make(map[string]domain.Template)}
}

func (s *TemplateStore) Save(_ context.Context, tpl domain.Template) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.Slugify(tpl.Name)
	if existing, taken := s.byID[id]; taken && existing.Name != tpl.Name {
		counter := 2
		for {
			candidate := fmt.Sprintf("%s_%d", id, counter)
			if _, taken := s.byID[candidate]; !taken {
				id = candidate
				break
			}
			counter++
		}
	}

	tpl.ID = id
	s.byID[id] = tpl
	return id, nil
}

func (s *TemplateStore) Load(_ context.Context, id string) (*domain.Template, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
	}
	return &tpl, nil
}

func (s *TemplateStore) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
	}
	delete(s.byID, id)
	return nil
}

func (s *TemplateStore) List(_ context.Context) ([]domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Template, 0, len(s.byID))
	for _, tpl := range s.byID {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func checkID(id string) error {
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("id %q: %w", id, domain.ErrPathTraversal)
	}
	return nil
}
