package repository

import "errors"

// DeletePolicy decides what happens to rows that still reference a ledger,
// account or category when it is hard-deleted. No cascade exists at the SQL
// level, so the repositories carry the policy explicitly.
type DeletePolicy int

const (
	// DeleteRestrict refuses the delete while dependent rows exist. Default.
	DeleteRestrict DeletePolicy = iota
	// DeleteCascade removes or detaches dependent rows in the same engine
	// transaction. What "dependent" means is documented per repository.
	DeleteCascade
	// DeleteOrphan deletes the row and leaves dependents pointing at a key
	// that no longer resolves.
	DeleteOrphan
)

// ErrDeleteRestricted is returned under DeleteRestrict when dependent rows
// still reference the target.
var ErrDeleteRestricted = errors.New("delete restricted: dependent rows exist")
