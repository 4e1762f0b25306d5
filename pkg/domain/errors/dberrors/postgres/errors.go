package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// data to be written conflicts with existing one.
type Conflict struct {
	Table      string
	Constraint string
	Cause      error
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("conflict on %s (constraint: %s): %v", c.Table, c.Constraint, c.Cause)
}

func (c Conflict) Unwrap() []error {
	return []error{domerr.ErrConflict, c.Cause}
}

// Translate postgres errors into domain errors.
//
// unique violation becomes Conflict, and foreign key violation becomes Missing.
// Other errors are returned as they are.
func Translate(err error) error {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return err
	}

	switch pgerr.Code {
	case pgerrcode.UniqueViolation:
		return Conflict{Table: pgerr.TableName, Constraint: pgerr.ConstraintName, Cause: err}
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %w", Missing{Table: pgerr.TableName, Identity: pgerr.ConstraintName}, err)
	}
	return err
}
