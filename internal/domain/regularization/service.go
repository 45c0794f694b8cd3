package regularization

import "context"

type RegularizationService interface {
	Create(ctx context.Context, req CreateRegularizationRequest) (Request, error)

	// Review approves or rejects a pending request. Approval writes the proposed stamps
	// onto the day's attendance record in the same transaction.
	Review(ctx context.Context, req ReviewRegularizationRequest) (Request, error)

	Get(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RegularizationFilter) (ListRegularizationResponse, error)
}
