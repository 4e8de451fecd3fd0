package notification

import "context"

// Repository is the delivery ledger. Record is idempotent: inserting a row
// that collides with the composite unique index reports alreadySent=true
// instead of failing, so double-dispatch attempts observably no-op.
type Repository interface {
	Record(ctx context.Context, n *SentNotification) (alreadySent bool, err error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}
