package txn

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/pkg/apperrors"
)

// Timeout bounds how long a single transaction may run before it is aborted
// and rolled back.
const Timeout = 5 * time.Second

// WithTimeout runs fn inside one scoped transaction. The transaction commits
// only when fn returns nil; any error rolls it back, so a precondition
// failure inside fn leaves no partial state. A store that does not respond
// within the deadline surfaces as a StoreError.
func WithTimeout(db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	err := db.WithContext(ctx).Transaction(fn)
	if errors.Is(err, context.DeadlineExceeded) {
		return &apperrors.StoreError{Op: op, Err: err}
	}
	return apperrors.WrapStore(op, err)
}
