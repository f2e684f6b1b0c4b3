// Package memoryRepo holds map-backed repositories with the same semantics as
// the MongoDB ones, used by service and handler tests.
package memoryRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	boardRepo "bizhub/database/repository/board"
	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	requestsRepo "bizhub/database/repository/requests"
	"bizhub/models"
)

// Businesses implements businessRepo.BusinessRepository.
type Businesses struct {
	mu    sync.RWMutex
	items map[string]models.Business
}

func NewBusinesses(seed ...models.Business) *Businesses {
	r := &Businesses{items: map[string]models.Business{}}
	for _, b := range seed {
		r.items[b.ID] = b
	}
	return r
}

func (r *Businesses) GetByID(_ context.Context, id string) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &b, nil
}

func (r *Businesses) Create(_ context.Context, b *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = *b
	return nil
}

func (r *Businesses) Update(_ context.Context, b *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return businessRepo.ErrBusinessNotFound
	}
	b.UpdatedAt = time.Now()
	r.items[b.ID] = *b
	return nil
}

// Catalog implements catalogRepo.CatalogRepository.
type Catalog struct {
	mu       sync.RWMutex
	services map[string]models.Service
	events   map[string]models.Event
	// Err, when set, is returned by every read.
	Err error
}

func NewCatalog() *Catalog {
	return &Catalog{services: map[string]models.Service{}, events: map[string]models.Event{}}
}

func (r *Catalog) GetService(_ context.Context, businessID, serviceID string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &s, nil
}

func (r *Catalog) ListServices(_ context.Context, businessID string) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Service{}
	for _, s := range r.services {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Catalog) CreateService(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = *s
	return nil
}

func (r *Catalog) GetEvents(_ context.Context, businessID, serviceID string) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Event{}
	for _, e := range r.events {
		if e.BusinessID == businessID && e.ServiceID == serviceID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

func (r *Catalog) GetEvent(_ context.Context, businessID, eventID string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.events[eventID]
	if !ok || e.BusinessID != businessID {
		return nil, catalogRepo.ErrEventNotFound
	}
	return &e, nil
}

func (r *Catalog) CreateEvent(_ context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = *e
	return nil
}

// Requests implements requestsRepo.RequestRepository.
type Requests struct {
	mu    sync.RWMutex
	items []models.ServiceRequest
}

func NewRequests(seed ...models.ServiceRequest) *Requests {
	return &Requests{items: append([]models.ServiceRequest(nil), seed...)}
}

func (r *Requests) Create(_ context.Context, req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *req)
	return nil
}

func (r *Requests) GetByID(_ context.Context, businessID, id string) (*models.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.items {
		if req.ID == id && req.BusinessID == businessID {
			out := req
			return &out, nil
		}
	}
	return nil, requestsRepo.ErrRequestNotFound
}

func (r *Requests) CountSince(_ context.Context, businessID string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, req := range r.items {
		if req.BusinessID == businessID && !req.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *Requests) ListBooked(_ context.Context, businessID string, from, to time.Time) ([]models.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.ServiceRequest{}
	for _, req := range r.items {
		if req.BusinessID != businessID {
			continue
		}
		if req.Status != models.RequestStatusPending && req.Status != models.RequestStatusAccepted {
			continue
		}
		for _, dt := range req.DateTimes {
			if !dt.Before(from) && dt.Before(to) {
				out = append(out, req)
				break
			}
		}
	}
	return out, nil
}

// All returns every stored request in insertion order.
func (r *Requests) All() []models.ServiceRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ServiceRequest(nil), r.items...)
}

// Board implements boardRepo.BoardRepository.
type Board struct {
	mu    sync.RWMutex
	items []models.BoardAction
}

func NewBoard() *Board {
	return &Board{}
}

func (r *Board) Create(_ context.Context, a *models.BoardAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *a)
	return nil
}

func (r *Board) GetByID(_ context.Context, id string) (*models.BoardAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, boardRepo.ErrActionNotFound
}

func (r *Board) Update(_ context.Context, a *models.BoardAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == a.ID {
			a.UpdatedAt = time.Now()
			r.items[i] = *a
			return nil
		}
	}
	return boardRepo.ErrActionNotFound
}

func (r *Board) CountByType(_ context.Context, businessID, boardRef, actionType string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.items {
		if a.BusinessID == businessID && a.BoardRef == boardRef && a.ActionType == actionType {
			n++
		}
	}
	return n, nil
}

func (r *Board) ListByBoard(_ context.Context, businessID, boardRef string) ([]models.BoardAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.BoardAction{}
	for _, a := range r.items {
		if a.BusinessID == businessID && a.BoardRef == boardRef {
			out = append(out, a)
		}
	}
	return out, nil
}

var (
	_ businessRepo.BusinessRepository = (*Businesses)(nil)
	_ catalogRepo.CatalogRepository   = (*Catalog)(nil)
	_ requestsRepo.RequestRepository  = (*Requests)(nil)
	_ boardRepo.BoardRepository       = (*Board)(nil)
)
