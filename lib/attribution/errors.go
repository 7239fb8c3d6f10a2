package attribution

import (
	"github.com/pkg/errors"
)

// Rejection reasons for DiffFile. All are terminal: a rejected (commit,
// path) pair produces no delta and is not retried. Use errors.Is to tell
// them apart.
var (
	ErrInvalidFile           = errors.New("ignored or unskilled file")
	ErrCommitDataUnavailable = errors.New("error loading commit data")
	ErrMergeCommit           = errors.New("commit was a merge")
	ErrOutOfWindow           = errors.New("commit was not made this month")
)
