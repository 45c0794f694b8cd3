package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
)

type regularizationRepository struct {
	s *Store
}

func NewRegularizationRepository(s *Store) regularization.RegularizationRepository {
	return &regularizationRepository{s: s}
}

// Create implements regularization.RegularizationRepository.
func (r *regularizationRepository) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	err := r.s.write(ctx, func() error {
		req.Date = r.s.day(req.Date)
		key := calendar.Key(req.Date)
		for _, other := range r.s.regularizations {
			if other.EmployeeID == req.EmployeeID && calendar.Key(other.Date) == key && other.Status == regularization.StatusPending {
				return regularization.ErrDuplicatePendingRequest
			}
		}
		now := time.Now()
		req.ID = newID()
		req.CreatedAt = now
		req.UpdatedAt = now
		r.s.regularizations[req.ID] = req
		return nil
	})
	if err != nil {
		return regularization.Request{}, err
	}
	return req, nil
}

// GetByID implements regularization.RegularizationRepository.
func (r *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.regularizations[id]
	if !ok {
		return regularization.Request{}, regularization.ErrRequestNotFound
	}
	return req, nil
}

// GetForUpdate implements regularization.RegularizationRepository.
func (r *regularizationRepository) GetForUpdate(ctx context.Context, id string) (regularization.Request, error) {
	return r.GetByID(ctx, id)
}

// List implements regularization.RegularizationRepository.
func (r *regularizationRepository) List(ctx context.Context, filter regularization.RegularizationFilter) ([]regularization.Request, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []regularization.Request
	for _, req := range r.s.regularizations {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		key := calendar.Key(req.Date)
		if filter.StartDate != nil && key < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && key > *filter.EndDate {
			continue
		}
		matched = append(matched, req)
	}
	slices.SortFunc(matched, func(a, b regularization.Request) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// Resolve implements regularization.RegularizationRepository.
func (r *regularizationRepository) Resolve(ctx context.Context, id string, status regularization.Status, reviewerID string, comment *string, reviewedAt time.Time, attendanceID *string) (regularization.Request, error) {
	var saved regularization.Request
	err := r.s.write(ctx, func() error {
		req, ok := r.s.regularizations[id]
		if !ok {
			return regularization.ErrRequestNotFound
		}
		if req.Status != regularization.StatusPending {
			return regularization.ErrInvalidStateTransition
		}
		req.Status = status
		req.ReviewedBy = &reviewerID
		req.ReviewComment = comment
		req.ReviewedAt = &reviewedAt
		req.AttendanceID = attendanceID
		req.UpdatedAt = time.Now()
		r.s.regularizations[id] = req
		saved = req
		return nil
	})
	return saved, err
}
