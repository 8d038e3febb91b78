package store

import (
	"catalog/models"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCategoryStore implements CategoryStore using an in-memory map.
type MemoryCategoryStore struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]models.Category
	now        func() time.Time
}

func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{
		categories: make(map[primitive.ObjectID]models.Category),
		now:        mongoNow,
	}
}

func (s *MemoryCategoryStore) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate category: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category := *c
	category.ID = primitive.NewObjectID()
	category.CreatedAt = s.now()
	s.categories[category.ID] = category
	return &category, nil
}

func (s *MemoryCategoryStore) FindAll(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (s *MemoryCategoryStore) find(id primitive.ObjectID) *models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil
	}
	return &c
}

// MemoryStore implements ProductStore using an in-memory map. Categories are
// resolved against the given MemoryCategoryStore.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[primitive.ObjectID]memoryProduct
	categories *MemoryCategoryStore
	seq        uint64
	now        func() time.Time
}

// memoryProduct remembers insertion order to break createdAt ties.
type memoryProduct struct {
	models.Product
	seq uint64
}

func NewMemoryStore(categories *MemoryCategoryStore) *MemoryStore {
	return &MemoryStore{
		products:   make(map[primitive.ObjectID]memoryProduct),
		categories: categories,
		now:        mongoNow,
	}
}

func (s *MemoryStore) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	product := *p
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	s.seq++
	s.products[product.ID] = memoryProduct{Product: product, seq: s.seq}
	return &product, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]models.ProductDetail, error) {
	s.mu.RLock()
	list := make([]memoryProduct, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].seq > list[j].seq
	})

	details := make([]models.ProductDetail, 0, len(list))
	for _, p := range list {
		details = append(details, models.NewProductDetail(p.Product, s.categories.find(p.CategoryID)))
	}
	return details, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	s.mu.RLock()
	p, ok := s.products[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrProductNotFound
	}

	detail := models.NewProductDetail(p.Product, s.categories.find(p.CategoryID))
	return &detail, nil
}

func (s *MemoryStore) Update(_ context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("revalidate product %s: %w", id.Hex(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	p.UpdatedAt = s.now()
	s.products[id] = p

	updated := p.Product
	return &updated, nil
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
