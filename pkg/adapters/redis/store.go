// Package redis implements the template store on Redis, for setups that
// share user templates across workstations instead of keeping them in a
// local directory.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	backend "github.com/redis/go-redis/v9"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Store implements ports.TemplateStore on Redis. Templates live under
// <prefix><slug>; a set at <prefix>index tracks the stored slugs.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix for templates.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "fretbridge:template:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save stores a template under its derived slug, resolving name collisions
// with a counter suffix the same way the file store does.
func (s *Store) Save(ctx context.Context, tpl domain.Template) (string, error) {
	id := domain.Slugify(tpl.Name)
	existing, err := s.load(ctx, id)
	if err == nil && existing.Name != tpl.Name {
		counter := 2
		for {
			candidate := fmt.Sprintf("%s_%d", id, counter)
			taken, err := s.client.Exists(ctx, s.key(candidate)).Result()
			if err != nil {
				return "", fmt.Errorf("failed to probe slug: %w", err)
			}
			if taken == 0 {
				id = candidate
				break
			}
			counter++
		}
	}

	tpl.ID = id
	data, err := json.Marshal(&tpl)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(id), data, 0)
	pipe.SAdd(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to save to redis: %w", err)
	}
	return id, nil
}

func (s *Store) Load(ctx context.Context, id string) (*domain.Template, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *Store) load(ctx context.Context, id string) (*domain.Template, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var tpl domain.Template
	if err := json.Unmarshal([]byte(val), &tpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}
	return &tpl, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	if removed == 0 {
		return fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
	}
	return s.client.SRem(ctx, s.indexKey(), id).Err()
}

func (s *Store) List(ctx context.Context) ([]domain.Template, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]domain.Template, 0, len(ids))
	for _, id := range ids {
		tpl, err := s.load(ctx, id)
		if err != nil {
			continue
		}
		templates = append(templates, *tpl)
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func checkID(id string) error {
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("id %q: %w", id, domain.ErrPathTraversal)
	}
	return nil
}
