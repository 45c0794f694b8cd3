package office

import "context"

type OfficeRepository interface {
	List(ctx context.Context) ([]Office, error)
}
