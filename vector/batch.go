package vector

import (
	"fmt"

	"github.com/brimdata/cond"
)

type Column struct {
	Name string
	Type cond.Type
	Vec  Any
}

// Batch is an ordered set of columns of equal length.  A column whose Vec
// is nil is an output slot waiting to be filled.
type Batch struct {
	Columns []Column
}

func NewBatch(cols ...Column) *Batch {
	return &Batch{Columns: cols}
}

// Len returns the row count of the first column with a vector.
func (b *Batch) Len() uint32 {
	for _, c := range b.Columns {
		if c.Vec != nil {
			return c.Vec.Len()
		}
	}
	return 0
}

// Clone returns a shallow copy: the column slice is copied but vectors
// are shared.
func (b *Batch) Clone() *Batch {
	return &Batch{Columns: append([]Column(nil), b.Columns...)}
}

// Append adds a column and returns its index.
func (b *Batch) Append(col Column) int {
	b.Columns = append(b.Columns, col)
	return len(b.Columns) - 1
}

func (b *Batch) Types(args []int) []cond.Type {
	types := make([]cond.Type, 0, len(args))
	for _, k := range args {
		types = append(types, b.Columns[k].Type)
	}
	return types
}

// Validate checks that every populated column has the batch's row count
// and that args and result are in range.
func (b *Batch) Validate(args []int, result int) error {
	n := b.Len()
	for k, c := range b.Columns {
		if c.Vec != nil && c.Vec.Len() != n {
			return fmt.Errorf("column %d (%s) has %d rows, expected %d", k, c.Name, c.Vec.Len(), n)
		}
	}
	if result < 0 || result >= len(b.Columns) {
		return fmt.Errorf("result column index %d out of range", result)
	}
	for _, k := range args {
		if k < 0 || k >= len(b.Columns) {
			return fmt.Errorf("argument column index %d out of range", k)
		}
		if b.Columns[k].Vec == nil {
			return fmt.Errorf("argument column %d (%s) has no values", k, b.Columns[k].Name)
		}
	}
	return nil
}
