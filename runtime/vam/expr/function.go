package expr

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// Function is a column function.  ReturnType is called during planning
// with the types of the argument columns.  Exec computes the function
// over the argument columns args of b and stores the result in column
// result.  On error, b is left unmodified.
type Function interface {
	Name() string
	ReturnType(types []cond.Type) (cond.Type, error)
	Exec(b *vector.Batch, args []int, result int) error
}
