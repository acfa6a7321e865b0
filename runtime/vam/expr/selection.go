package expr

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
	"golang.org/x/exp/constraints"
)

// selection assigns each row to the branch whose value it takes: the
// first branch whose condition is true, or else.  Branch i < condCount is
// then argument i and branch condCount is else.
type selection struct {
	args   []int
	tags   []uint32
	counts []uint32
}

func newSelection(b *vector.Batch, args []int) (*selection, error) {
	n := b.Len()
	nconds := condCount(len(args))
	tags := make([]uint32, n)
	counts := make([]uint32, nconds+1)
	remaining := roaring.New()
	remaining.AddRange(0, uint64(n))
	for i := range nconds {
		pos := condArg(i)
		rows, err := TrueRows(b.Columns[args[pos]].Vec, pos)
		if err != nil {
			return nil, err
		}
		rows.And(remaining)
		remaining.AndNot(rows)
		counts[i] = uint32(rows.GetCardinality())
		it := rows.Iterator()
		for it.HasNext() {
			tags[it.Next()] = uint32(i)
		}
	}
	counts[nconds] = uint32(remaining.GetCardinality())
	it := remaining.Iterator()
	for it.HasNext() {
		tags[it.Next()] = uint32(nconds)
	}
	return &selection{args: args, tags: tags, counts: counts}, nil
}

// column returns the batch column index of branch i.
func (s *selection) column(i uint32) int {
	if int(i) == len(s.counts)-1 {
		return s.args[elseArg(len(s.args))]
	}
	return s.args[thenArg(int(i))]
}

func (s *selection) sources(b *vector.Batch) []vector.Any {
	vecs := make([]vector.Any, len(s.counts))
	for i := range vecs {
		vecs[i] = b.Columns[s.column(uint32(i))].Vec
	}
	return vecs
}

// single returns the only branch used by any row, if there is one.
func (s *selection) single() (uint32, bool) {
	var used []uint32
	for i, n := range s.counts {
		if n > 0 {
			used = append(used, uint32(i))
		}
	}
	if len(used) == 1 {
		return used[0], true
	}
	return 0, false
}

// gather copies the selected value of each row into a vector of type typ.
func (s *selection) gather(b *vector.Batch, typ cond.Type) vector.Any {
	srcs := s.sources(b)
	builder := vector.NewBuilder(typ)
	for row, tag := range s.tags {
		if src := srcs[tag]; vector.IsNull(src) {
			builder.AppendZero()
		} else {
			builder.Append(src, uint32(row))
		}
	}
	return builder.Build()
}

func (s *selection) tracker() vector.Any {
	n := uint32(len(s.tags))
	if i, ok := s.single(); ok {
		return constTracker(s.column(i), n)
	}
	if n == 0 {
		return constTracker(s.column(uint32(len(s.counts)-1)), 0)
	}
	values := make([]uint64, n)
	for row, tag := range s.tags {
		values[row] = uint64(s.column(tag))
	}
	return vector.NewUint(cond.TypeUint16, values)
}

type number interface {
	constraints.Integer | constraints.Float
}

// gatherNumbers is gather for scalar numeric results.  Values of null
// branches are zero.
func gatherNumbers[T number](s *selection, srcs []vector.Any, value func(vector.Any, uint32) (T, bool)) []T {
	out := make([]T, len(s.tags))
	for row, tag := range s.tags {
		if src := srcs[tag]; !vector.IsNull(src) {
			out[row], _ = value(src, uint32(row))
		}
	}
	return out
}
