package wfh

import (
	"context"
	"time"
)

type WFHService interface {
	Create(ctx context.Context, req CreateWFHRequest) (Request, error)
	Review(ctx context.Context, req ReviewWFHRequest) (Request, error)
	Consume(ctx context.Context, requestID string, attendanceID string) (Request, error)
	Get(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter WFHFilter) (ListWFHResponse, error)
	FindBypass(ctx context.Context, employeeID string, date time.Time) (*Request, error)
}
