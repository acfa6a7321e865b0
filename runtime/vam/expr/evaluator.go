package expr

//go:generate go run go.uber.org/mock/mockgen -destination=./mock/mock_evaluator.go -package=mock . Evaluator

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// An Evaluator computes multiIf over one kind of payload.  Eval reads the
// arguments args of b, whose layout is that of multiIf, and writes the
// result to column result, whose Type has been set to the result type.
// It returns false without modifying b if it cannot handle the
// arguments.  When tracking is enabled, Eval also writes the origin
// tracker: for every row, the batch column index of the argument that
// supplied the row's value.
type Evaluator interface {
	Name() string
	Eval(b *vector.Batch, args []int, result int, t Tracking) (bool, error)
}

// Tracking says whether and where an Evaluator writes the origin tracker.
type Tracking struct {
	slot    int
	enabled bool
}

var NoTracking Tracking

func TrackTo(slot int) Tracking {
	return Tracking{slot: slot, enabled: true}
}

func (t Tracking) Enabled() bool {
	return t.enabled
}

func (t Tracking) Slot() int {
	return t.slot
}

// Write stores vec, a uint16 vector or constant, as the tracker column.
func (t Tracking) Write(b *vector.Batch, vec vector.Any) {
	if t.enabled {
		b.Columns[t.slot] = vector.Column{Name: b.Columns[t.slot].Name, Type: cond.TypeUint16, Vec: vec}
	}
}

func DefaultEvaluators() []Evaluator {
	return []Evaluator{&Trivial{}, &Numeric{}, &Strings{}, &StringArrays{}}
}
