package mongodb

import (
	"context"
	"errors"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
)

// translateErr maps driver errors to the application error taxonomy at the
// repository boundary so services never handle mongo errors directly.
func translateErr(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NotFound(notFoundMsg)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.Conflict(conflictMsg)
	case mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded):
		return apperrors.Store(err)
	default:
		return apperrors.Store(err)
	}
}
