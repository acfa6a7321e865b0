package expr

import (
	"errors"
	"fmt"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
	"github.com/brimdata/cond/vector/bitvec"
	"go.uber.org/zap"
)

// MultiIf implements multiIf(cond0, then0, ..., else) and the CASE
// expression without an operand.  A MultiIf holds no state that changes
// across calls and may be used concurrently.
type MultiIf struct {
	sctx       *cond.Context
	name       string
	caseMode   bool
	logger     *zap.Logger
	metrics    *Metrics
	evaluators []Evaluator
}

var _ Function = (*MultiIf)(nil)

type Option func(*MultiIf)

func WithLogger(logger *zap.Logger) Option {
	return func(m *MultiIf) {
		m.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *MultiIf) {
		m.metrics = metrics
	}
}

// WithEvaluators replaces the evaluators, which are tried in order.
func WithEvaluators(evals ...Evaluator) Option {
	return func(m *MultiIf) {
		m.evaluators = evals
	}
}

// WithName sets the function name used in error messages.
func WithName(name string) Option {
	return func(m *MultiIf) {
		m.name = name
	}
}

// CaseMode words errors for a CASE expression.
func CaseMode() Option {
	return func(m *MultiIf) {
		m.caseMode = true
	}
}

func NewMultiIf(sctx *cond.Context, opts ...Option) *MultiIf {
	m := &MultiIf{
		sctx:       sctx,
		name:       "multiIf",
		logger:     zap.NewNop(),
		evaluators: DefaultEvaluators(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MultiIf) Name() string {
	if m.caseMode {
		return "CASE"
	}
	return m.name
}

func (m *MultiIf) ReturnType(types []cond.Type) (cond.Type, error) {
	typ, err := ResolveMultiIf(m.sctx, types)
	if err != nil {
		return nil, m.relabel(err)
	}
	return typ, nil
}

func (m *MultiIf) Exec(b *vector.Batch, args []int, result int) error {
	if err := CheckArity(len(args)); err != nil {
		return m.relabel(err)
	}
	if err := b.Validate(args, result); err != nil {
		return err
	}
	typ, err := m.ReturnType(b.Types(args))
	if err != nil {
		return err
	}
	var out vector.Any
	if hasNullableBranches(b, args) {
		out, err = m.execNullable(b, args, typ)
	} else {
		scratch := b.Clone()
		out, err = m.run(scratch, args, scratch.Append(vector.Column{Type: typ}), NoTracking, false)
	}
	if err != nil {
		return m.relabel(err)
	}
	b.Columns[result].Type = typ
	b.Columns[result].Vec = out
	return nil
}

func (m *MultiIf) relabel(err error) error {
	return Relabel(err, m.name, m.caseMode)
}

func hasNullableBranches(b *vector.Batch, args []int) bool {
	for _, pos := range branchArgs(len(args)) {
		typ := b.Columns[args[pos]].Type
		if cond.IsNullable(typ) || cond.IsNullType(typ) {
			return true
		}
	}
	return false
}

// execNullable runs the evaluators over a batch in which the nullable
// branches are replaced by the values they wrap and the null-type
// branches are left as is.  The evaluators record which column supplied
// each row and the null bitmap of the result is rebuilt from that.
func (m *MultiIf) execNullable(b *vector.Batch, args []int, typ cond.Type) (vector.Any, error) {
	derived := b.Clone()
	dargs := append([]int(nil), args...)
	unwrapped := make(map[int]bool)
	for _, pos := range branchArgs(len(args)) {
		k := args[pos]
		if unwrapped[k] {
			continue
		}
		col := b.Columns[k]
		derived.Columns[k] = vector.Column{Name: col.Name, Type: cond.TypeUnder(col.Type), Vec: vector.Under(col.Vec)}
		unwrapped[k] = true
	}
	// A column that is both a branch and a condition keeps its nulls as a
	// condition.
	for i := range condCount(len(args)) {
		pos := condArg(i)
		if k := args[pos]; unwrapped[k] {
			dargs[pos] = derived.Append(b.Columns[k])
		}
	}
	result := derived.Append(vector.Column{Type: cond.TypeUnder(typ)})
	tracker := derived.Append(vector.Column{Name: "tracker", Type: cond.TypeUint16})
	out, err := m.run(derived, dargs, result, TrackTo(tracker), true)
	if err != nil {
		return nil, err
	}
	if vector.IsNull(out) {
		return out, nil
	}
	nulls, err := trackedNulls(b, args, derived.Columns[tracker].Vec, out.Len())
	if err != nil {
		return nil, err
	}
	return vector.NewNullableOf(m.sctx, out, nulls), nil
}

func (m *MultiIf) run(b *vector.Batch, args []int, result int, t Tracking, nullable bool) (vector.Any, error) {
	for _, e := range m.evaluators {
		ok, err := e.Eval(b, args, result, t)
		if err != nil {
			return nil, err
		}
		if ok {
			m.logger.Debug("multiIf evaluated",
				zap.String("function", m.Name()),
				zap.String("evaluator", e.Name()),
				zap.Bool("nullable", nullable),
				zap.Uint32("rows", b.Len()),
			)
			m.metrics.observe(e.Name(), nullable)
			return b.Columns[result].Vec, nil
		}
	}
	m.logger.Error("no evaluator for multiIf arguments",
		zap.String("function", m.Name()),
		zap.Stringer("type", b.Columns[result].Type),
		zap.String("branches", typeList(branchTypes(b.Types(args)))),
	)
	return nil, NewError(ErrNoApplicableEvaluator, -1, typeList(b.Types(args)))
}

// trackedNulls builds the null bitmap of a result from the tracker, which
// holds for each row the column of b that supplied the row.
func trackedNulls(b *vector.Batch, args []int, tracker vector.Any, n uint32) (bitvec.Bits, error) {
	switch tracker := tracker.(type) {
	case nil:
		return bitvec.Zero, errors.New("multiIf: evaluator did not write the tracker column")
	case *vector.Const:
		k, _ := vector.UintValue(tracker, 0)
		vec := b.Columns[k].Vec
		if vector.IsNull(vec) {
			return bitvec.NewTrue(n), nil
		}
		if nulls := vector.NullsOf(vec); !nulls.IsZero() {
			return nulls.Clone(), nil
		}
		return bitvec.NewFalse(n), nil
	case *vector.Uint:
		type source struct {
			null  bool
			nulls bitvec.Bits
		}
		sources := make([]source, len(b.Columns))
		masks := make([]bitvec.Bits, len(b.Columns))
		for _, pos := range branchArgs(len(args)) {
			k := args[pos]
			vec := b.Columns[k].Vec
			sources[k] = source{null: vector.IsNull(vec), nulls: vector.NullsOf(vec)}
			masks[k] = bitvec.NewFalse(n)
		}
		for row, k := range tracker.Values {
			if k >= uint64(len(masks)) || masks[k].IsZero() {
				return bitvec.Zero, fmt.Errorf("multiIf: tracker row %d names column %d, which is not a branch", row, k)
			}
			masks[k].Set(uint32(row))
		}
		out := bitvec.NewFalse(n)
		for k, s := range sources {
			switch {
			case masks[k].IsZero():
			case s.null:
				out = bitvec.Or(out, masks[k])
			case !s.nulls.IsZero():
				out = bitvec.Or(out, bitvec.And(masks[k], s.nulls))
			}
		}
		return out, nil
	}
	return bitvec.Zero, fmt.Errorf("multiIf: tracker column has unexpected type %s", tracker.Type())
}
