package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
)

type wfhRequestRepository struct {
	s *Store
}

func NewWFHRequestRepository(s *Store) wfh.WFHRequestRepository {
	return &wfhRequestRepository{s: s}
}

func isActive(r wfh.Request) bool {
	return r.Status == wfh.StatusPending || r.Status == wfh.StatusApproved
}

// Create implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) Create(ctx context.Context, req wfh.Request) (wfh.Request, error) {
	err := r.s.write(ctx, func() error {
		req.RequestDate = r.s.day(req.RequestDate)
		key := calendar.Key(req.RequestDate)
		for _, other := range r.s.wfh {
			if other.EmployeeID == req.EmployeeID && calendar.Key(other.RequestDate) == key && isActive(other) {
				return wfh.ErrDuplicateActiveRequest
			}
		}
		now := time.Now()
		req.ID = newID()
		req.CreatedAt = now
		req.UpdatedAt = now
		r.s.wfh[req.ID] = req
		return nil
	})
	if err != nil {
		return wfh.Request{}, err
	}
	return req, nil
}

// GetByID implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) GetByID(ctx context.Context, id string) (wfh.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.wfh[id]
	if !ok {
		return wfh.Request{}, wfh.ErrRequestNotFound
	}
	return req, nil
}

// List implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) List(ctx context.Context, filter wfh.WFHFilter) ([]wfh.Request, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []wfh.Request
	for _, req := range r.s.wfh {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.State() != *filter.Status {
			continue
		}
		key := calendar.Key(req.RequestDate)
		if filter.StartDate != nil && key < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && key > *filter.EndDate {
			continue
		}
		matched = append(matched, req)
	}
	slices.SortFunc(matched, func(a, b wfh.Request) int {
		if c := b.RequestDate.Compare(a.RequestDate); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// Review implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) Review(ctx context.Context, id string, status wfh.Status, reviewerID string, comment *string, reviewedAt time.Time) (wfh.Request, error) {
	var saved wfh.Request
	err := r.s.write(ctx, func() error {
		req, ok := r.s.wfh[id]
		if !ok {
			return wfh.ErrRequestNotFound
		}
		if req.Status != wfh.StatusPending {
			return wfh.ErrInvalidStateTransition
		}
		req.Status = status
		req.ReviewedBy = &reviewerID
		if status == wfh.StatusApproved {
			req.ApprovedBy = &reviewerID
		}
		req.ReviewComment = comment
		req.ReviewedAt = &reviewedAt
		req.UpdatedAt = time.Now()
		r.s.wfh[id] = req
		saved = req
		return nil
	})
	return saved, err
}

// Consume implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) Consume(ctx context.Context, id string, attendanceID string, consumedAt time.Time) (wfh.Request, error) {
	var saved wfh.Request
	err := r.s.write(ctx, func() error {
		req, ok := r.s.wfh[id]
		if !ok {
			return wfh.ErrRequestNotFound
		}
		if !req.IsBypass() {
			return wfh.ErrInvalidStateTransition
		}
		req.ConsumedAt = &consumedAt
		req.ConsumedAttendanceID = &attendanceID
		req.UpdatedAt = time.Now()
		r.s.wfh[id] = req
		saved = req
		return nil
	})
	return saved, err
}

// FindBypass implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) FindBypass(ctx context.Context, employeeID string, date time.Time) (*wfh.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := calendar.Key(date)
	for _, req := range r.s.wfh {
		if req.EmployeeID == employeeID && calendar.Key(req.RequestDate) == key && req.IsBypass() {
			return &req, nil
		}
	}
	return nil, nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	from := (page - 1) * limit
	if from >= len(items) {
		return []T{}
	}
	return items[from:min(from+limit, len(items))]
}
