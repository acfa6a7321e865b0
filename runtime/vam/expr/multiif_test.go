package expr_test

import (
	"fmt"
	"testing"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
	"github.com/brimdata/cond/runtime/vam/expr/mock"
	"github.com/brimdata/cond/sio/textio"
	"github.com/brimdata/cond/vector"
	"github.com/brimdata/cond/vector/bitvec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

func column(name string, vec vector.Any) vector.Column {
	return vector.Column{Name: name, Type: vec.Type(), Vec: vec}
}

func int32s(vals ...int64) *vector.Int {
	return vector.NewInt(cond.TypeInt32, vals)
}

func nullable(sctx *cond.Context, vec vector.Any, nulls ...uint32) *vector.Nullable {
	return vector.NewNullableOf(sctx, vec, bitvec.FromRoaringOf(vec.Len(), nulls...))
}

// batchOf returns a batch of cols followed by an empty output column and
// the argument list naming cols in order.
func batchOf(cols ...vector.Column) (*vector.Batch, []int, int) {
	b := vector.NewBatch(cols...)
	args := make([]int, len(cols))
	for k := range args {
		args[k] = k
	}
	return b, args, b.Append(vector.Column{Name: "out"})
}

func exec(t *testing.T, f expr.Function, cols ...vector.Column) vector.Column {
	b, args, result := batchOf(cols...)
	require.NoError(t, f.Exec(b, args, result))
	return b.Columns[result]
}

func TestMultiIfConstantCondition(t *testing.T) {
	out := exec(t, expr.NewMultiIf(cond.NewContext()),
		column("c", vector.NewConstBool(true, 4)),
		column("then", vector.NewConstInt(cond.TypeInt32, 1, 4)),
		column("else", int32s(5, 5, 5, 5)),
	)
	assert.Same(t, cond.TypeInt32, out.Type)
	require.IsType(t, &vector.Const{}, out.Vec)
	assert.Equal(t, []string{"1", "1", "1", "1"}, textio.Format(out.Vec))
}

func TestMultiIfRowwiseStrings(t *testing.T) {
	out := exec(t, expr.NewMultiIf(cond.NewContext()),
		column("c1", vector.NewBoolFromValues(false, true, false, false)),
		column("t1", vector.NewConstString("a", 4)),
		column("c2", vector.NewBoolFromValues(true, true, false, false)),
		column("t2", vector.NewConstString("b", 4)),
		column("else", vector.NewStringFromValues("c", "c", "c", "d")),
	)
	assert.Same(t, cond.TypeString, out.Type)
	assert.False(t, vector.IsNullable(out.Vec))
	assert.Equal(t, []string{`"b"`, `"a"`, `"c"`, `"d"`}, textio.Format(out.Vec))
}

func TestMultiIfNullableBranches(t *testing.T) {
	sctx := cond.NewContext()
	out := exec(t, expr.NewMultiIf(sctx),
		column("c1", vector.NewBoolFromValues(true, true, false, false)),
		column("t1", nullable(sctx, int32s(10, 11, 12, 13), 0)),
		column("c2", vector.NewBoolFromValues(false, false, true, false)),
		column("t2", int32s(20, 21, 22, 23)),
		column("else", vector.NewNull(4)),
	)
	assert.Equal(t, "nullable(int32)", out.Type.String())
	require.IsType(t, &vector.Nullable{}, out.Vec)
	assert.Equal(t, "1001", out.Vec.(*vector.Nullable).Nulls.String())
	assert.Equal(t, []string{"null", "11", "22", "null"}, textio.Format(out.Vec))
}

func TestMultiIfAllNullBranches(t *testing.T) {
	ctrl := gomock.NewController(t)
	never := mock.NewMockEvaluator(ctrl)
	f := expr.NewMultiIf(cond.NewContext(), expr.WithEvaluators(&expr.Trivial{}, never))
	out := exec(t, f,
		column("c", vector.NewBoolFromValues(true, false, true)),
		column("then", vector.NewNull(3)),
		column("else", vector.NewNull(3)),
	)
	assert.Same(t, cond.TypeNull, out.Type)
	require.IsType(t, &vector.Null{}, out.Vec)
	assert.EqualValues(t, 3, out.Vec.Len())
}

func TestMultiIfFixedStringMismatch(t *testing.T) {
	sctx := cond.NewContext()
	b, args, result := batchOf(
		column("c", vector.NewBoolFromValues(true)),
		column("then", vector.NewFixedStringFromValues(sctx.MustLookupTypeFixedString(3), "abc")),
		column("else", vector.NewFixedStringFromValues(sctx.MustLookupTypeFixedString(5), "abcde")),
	)
	err := expr.NewMultiIf(sctx).Exec(b, args, result)
	assert.ErrorIs(t, err, expr.ErrFixedStringLengthMismatch)
	assert.Nil(t, b.Columns[result].Vec)
	assert.Nil(t, b.Columns[result].Type)
}

func TestMultiIfArity(t *testing.T) {
	ctrl := gomock.NewController(t)
	never := mock.NewMockEvaluator(ctrl)
	b, args, result := batchOf(
		column("c", vector.NewBoolFromValues(true)),
		column("then", int32s(1)),
		column("c2", vector.NewBoolFromValues(true)),
		column("then2", int32s(2)),
	)
	err := expr.NewMultiIf(cond.NewContext(), expr.WithEvaluators(never)).Exec(b, args, result)
	assert.ErrorIs(t, err, expr.ErrArity)
	assert.Nil(t, b.Columns[result].Vec)
}

func TestMultiIfConditionKinds(t *testing.T) {
	sctx := cond.NewContext()
	out := exec(t, expr.NewMultiIf(sctx),
		column("c1", vector.NewUint(cond.TypeUint8, []uint64{0, 2, 0, 0})),
		column("t1", vector.NewConstString("uint8", 4)),
		column("c2", nullable(sctx, vector.NewBoolFromValues(false, false, true, true), 3)),
		column("t2", vector.NewConstString("bool", 4)),
		column("c3", vector.NewNull(4)),
		column("t3", vector.NewConstString("null", 4)),
		column("else", vector.NewConstString("else", 4)),
	)
	assert.Equal(t, []string{`"else"`, `"uint8"`, `"bool"`, `"else"`}, textio.Format(out.Vec))
}

func TestMultiIfInvalidConditionColumn(t *testing.T) {
	b, args, result := batchOf(
		column("c", vector.NewStringFromValues("true")),
		column("then", int32s(1)),
		column("else", int32s(2)),
	)
	err := expr.NewMultiIf(cond.NewContext(), expr.CaseMode()).Exec(b, args, result)
	assert.ErrorIs(t, err, expr.ErrInvalidConditionType)
	assert.Contains(t, err.Error(), "CASE construction")
}

func TestMultiIfArrays(t *testing.T) {
	sctx := cond.NewContext()
	then := vector.NewArray(sctx.LookupTypeArray(cond.TypeInt8), []uint32{0, 2, 3},
		vector.NewInt(cond.TypeInt8, []int64{1, 2, 3}))
	els := vector.NewArray(sctx.LookupTypeArray(cond.TypeUint8), []uint32{0, 1, 1},
		vector.NewUint(cond.TypeUint8, []uint64{200}))
	out := exec(t, expr.NewMultiIf(sctx),
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", then),
		column("else", els),
	)
	assert.Equal(t, "array(int16)", out.Type.String())
	assert.Equal(t, []string{"[1,2]", "[]"}, textio.Format(out.Vec))

	out = exec(t, expr.NewMultiIf(sctx),
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", then),
		column("else", vector.NewNull(2)),
	)
	assert.Equal(t, "nullable(array(int8))", out.Type.String())
	assert.Equal(t, []string{"[1,2]", "null"}, textio.Format(out.Vec))
}

func TestMultiIfStringArrays(t *testing.T) {
	sctx := cond.NewContext()
	fixed := sctx.MustLookupTypeFixedString(2)
	then := vector.NewArray(sctx.LookupTypeArray(cond.TypeString), []uint32{0, 1, 3},
		vector.NewStringFromValues("ab", "c", "d"))
	els := vector.NewArray(sctx.LookupTypeArray(fixed), []uint32{0, 1, 2},
		vector.NewFixedStringFromValues(fixed, "x", "yz"))
	out := exec(t, expr.NewMultiIf(sctx),
		column("c", vector.NewBoolFromValues(false, true)),
		column("then", then),
		column("else", els),
	)
	assert.Equal(t, "array(string)", out.Type.String())
	assert.Equal(t, []string{`["x\x00"]`, `["c","d"]`}, textio.Format(out.Vec))
}

func TestMultiIfStringAndFixedString(t *testing.T) {
	sctx := cond.NewContext()
	out := exec(t, expr.NewMultiIf(sctx),
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", vector.NewFixedStringFromValues(sctx.MustLookupTypeFixedString(1), "a", "b")),
		column("else", nullable(sctx, vector.NewStringFromValues("x", "y"), 1)),
	)
	assert.Equal(t, "nullable(string)", out.Type.String())
	assert.Equal(t, []string{`"a"`, "null"}, textio.Format(out.Vec))
}

func TestMultiIfNumericPromotion(t *testing.T) {
	out := exec(t, expr.NewMultiIf(cond.NewContext()),
		column("c", vector.NewBoolFromValues(true, false, true)),
		column("then", vector.NewInt(cond.TypeInt8, []int64{-1, -2, -3})),
		column("else", vector.NewUint(cond.TypeUint16, []uint64{100, 60000, 7})),
	)
	assert.Same(t, cond.TypeInt32, out.Type)
	assert.Equal(t, []int64{-1, 60000, -3}, out.Vec.(*vector.Int).Values)

	out = exec(t, expr.NewMultiIf(cond.NewContext()),
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", vector.NewInt(cond.TypeInt8, []int64{1, 2})),
		column("else", vector.NewConstFloat(cond.TypeFloat32, 0.5, 2)),
	)
	assert.Same(t, cond.TypeFloat32, out.Type)
	assert.Equal(t, []string{"1", "0.5"}, textio.Format(out.Vec))
}

func TestMultiIfIdempotent(t *testing.T) {
	sctx := cond.NewContext()
	f := expr.NewMultiIf(sctx)
	b, args, first := batchOf(
		column("c1", vector.NewBoolFromValues(true, false, false, true, false)),
		column("t1", nullable(sctx, int32s(1, 2, 3, 4, 5), 3)),
		column("c2", vector.NewBoolFromValues(false, true, false, false, true)),
		column("t2", nullable(sctx, vector.NewInt(cond.TypeInt16, []int64{6, 7, 8, 9, 10}), 4)),
		column("else", vector.NewNull(5)),
	)
	second := b.Append(vector.Column{Name: "out2"})
	require.NoError(t, f.Exec(b, args, first))
	require.NoError(t, f.Exec(b, args, second))
	x, y := b.Columns[first], b.Columns[second]
	assert.Equal(t, x.Type, y.Type)
	assert.Equal(t, textio.Format(x.Vec), textio.Format(y.Vec))
	assert.True(t, bitvec.Equal(vector.NullsOf(x.Vec), vector.NullsOf(y.Vec)))
	assert.Equal(t, []string{"1", "7", "null", "null", "null"}, textio.Format(x.Vec))
}

func TestTrivialMatchesGeneralPath(t *testing.T) {
	sctx := cond.NewContext()
	for _, conds := range [][2]bool{{false, false}, {false, true}, {true, true}, {true, false}} {
		cols := []vector.Column{
			column("c1", vector.NewConstBool(conds[0], 4)),
			column("t1", nullable(sctx, int32s(1, 2, 3, 4), 1)),
			column("c2", vector.NewConstBool(conds[1], 4)),
			column("t2", int32s(5, 6, 7, 8)),
			column("else", vector.NewNull(4)),
		}
		trivial := exec(t, expr.NewMultiIf(sctx), cols...)
		general := exec(t, expr.NewMultiIf(sctx, expr.WithEvaluators(&expr.Numeric{})), cols...)
		name := fmt.Sprint(conds)
		assert.Equal(t, general.Type, trivial.Type, name)
		assert.Equal(t, textio.Format(general.Vec), textio.Format(trivial.Vec), name)
		assert.True(t, bitvec.Equal(vector.NullsOf(general.Vec), vector.NullsOf(trivial.Vec)), name)
	}
}

func TestNullBitmapFollowsSelectedBranch(t *testing.T) {
	sctx := cond.NewContext()
	const n = 64
	c1 := bitvec.NewFalse(n)
	c2 := bitvec.NewFalse(n)
	var v1, v2, v3 []int64
	var nulls1, nulls2 []uint32
	for row := range uint32(n) {
		if row%3 == 0 {
			c1.Set(row)
		}
		if row%2 == 0 {
			c2.Set(row)
		}
		if row%5 == 0 {
			nulls1 = append(nulls1, row)
		}
		if row%7 == 0 {
			nulls2 = append(nulls2, row)
		}
		v1 = append(v1, int64(row))
		v2 = append(v2, int64(100+row))
		v3 = append(v3, int64(200+row))
	}
	t1 := nullable(sctx, int32s(v1...), nulls1...)
	t2 := nullable(sctx, int32s(v2...), nulls2...)
	out := exec(t, expr.NewMultiIf(sctx),
		column("c1", vector.NewBool(c1)),
		column("t1", t1),
		column("c2", vector.NewBool(c2)),
		column("t2", t2),
		column("c3", vector.NewConstBool(true, n)),
		column("t3", int32s(v3...)),
		column("else", vector.NewNull(n)),
	)
	nulls := vector.NullsOf(out.Vec)
	for row := range uint32(n) {
		var want bool
		switch {
		case c1.IsSet(row):
			want = t1.Nulls.IsSet(row)
		case c2.IsSet(row):
			want = t2.Nulls.IsSet(row)
		}
		assert.Equal(t, want, nulls.IsSet(row), "row %d", row)
	}
}

func TestMultiIfConcurrent(t *testing.T) {
	sctx := cond.NewContext()
	f := expr.NewMultiIf(sctx)
	var g errgroup.Group
	for i := range 16 {
		g.Go(func() error {
			b, args, result := batchOf(
				column("c", vector.NewBoolFromValues(i%2 == 0, i%2 == 1)),
				column("then", nullable(sctx, int32s(int64(i), int64(i)), 1)),
				column("else", vector.NewInt(cond.TypeInt8, []int64{-1, -1})),
			)
			if err := f.Exec(b, args, result); err != nil {
				return err
			}
			want := []string{"-1", "null"}
			if i%2 == 0 {
				want = []string{fmt.Sprint(i), "-1"}
			}
			if got := textio.Format(b.Columns[result].Vec); fmt.Sprint(got) != fmt.Sprint(want) {
				return fmt.Errorf("batch %d: got %v, want %v", i, got, want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestEvaluatorPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockEvaluator(ctrl)
	second := mock.NewMockEvaluator(ctrl)
	third := mock.NewMockEvaluator(ctrl)
	second.EXPECT().Name().Return("second").AnyTimes()
	gomock.InOrder(
		first.EXPECT().Eval(gomock.Any(), gomock.Any(), gomock.Any(), expr.NoTracking).Return(false, nil),
		second.EXPECT().Eval(gomock.Any(), gomock.Any(), gomock.Any(), expr.NoTracking).DoAndReturn(
			func(b *vector.Batch, _ []int, result int, _ expr.Tracking) (bool, error) {
				b.Columns[result].Vec = vector.NewConstInt(cond.TypeInt32, 42, b.Len())
				return true, nil
			}),
	)
	out := exec(t, expr.NewMultiIf(cond.NewContext(), expr.WithEvaluators(first, second, third)),
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", int32s(1, 2)),
		column("else", int32s(3, 4)),
	)
	assert.Equal(t, []string{"42", "42"}, textio.Format(out.Vec))
}

func TestEvaluatorWritesTracker(t *testing.T) {
	sctx := cond.NewContext()
	ctrl := gomock.NewController(t)
	eval := mock.NewMockEvaluator(ctrl)
	eval.EXPECT().Name().Return("mock").AnyTimes()
	eval.EXPECT().Eval(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(b *vector.Batch, args []int, result int, tr expr.Tracking) (bool, error) {
			require.True(t, tr.Enabled())
			assert.Same(t, cond.TypeInt32, b.Columns[result].Type)
			// Rows 0 and 1 come from then and rows 2 and 3 from else.
			b.Columns[result].Vec = int32s(0, 0, 0, 0)
			then, els := uint64(args[1]), uint64(args[2])
			tr.Write(b, vector.NewUint(cond.TypeUint16, []uint64{then, then, els, els}))
			return true, nil
		})
	out := exec(t, expr.NewMultiIf(sctx, expr.WithEvaluators(eval)),
		column("c", vector.NewBoolFromValues(true, true, false, false)),
		column("then", nullable(sctx, int32s(1, 2, 3, 4), 1, 2)),
		column("else", nullable(sctx, int32s(5, 6, 7, 8), 0, 3)),
	)
	assert.Equal(t, "0101", vector.NullsOf(out.Vec).String())
}

func TestTrackedNullsMixedSources(t *testing.T) {
	sctx := cond.NewContext()
	ctrl := gomock.NewController(t)
	eval := mock.NewMockEvaluator(ctrl)
	eval.EXPECT().Name().Return("mock").AnyTimes()
	eval.EXPECT().Eval(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(b *vector.Batch, args []int, result int, tr expr.Tracking) (bool, error) {
			b.Columns[result].Vec = int32s(0, 0, 0, 0, 0)
			t1, t2, els := uint64(args[1]), uint64(args[3]), uint64(args[4])
			tr.Write(b, vector.NewUint(cond.TypeUint16, []uint64{t1, t2, els, t2, els}))
			return true, nil
		})
	out := exec(t, expr.NewMultiIf(sctx, expr.WithEvaluators(eval)),
		column("c1", vector.NewBoolFromValues(true, false, false, false, false)),
		column("t1", vector.NewNull(5)),
		column("c2", vector.NewBoolFromValues(false, true, false, true, false)),
		column("t2", int32s(1, 2, 3, 4, 5)),
		column("else", nullable(sctx, int32s(1, 2, 3, 4, 5), 4)),
	)
	assert.Equal(t, "10001", vector.NullsOf(out.Vec).String())
}

func TestTrackerNamesCondition(t *testing.T) {
	sctx := cond.NewContext()
	ctrl := gomock.NewController(t)
	eval := mock.NewMockEvaluator(ctrl)
	eval.EXPECT().Name().Return("mock").AnyTimes()
	eval.EXPECT().Eval(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(b *vector.Batch, args []int, result int, tr expr.Tracking) (bool, error) {
			b.Columns[result].Vec = int32s(0, 0)
			tr.Write(b, vector.NewUint(cond.TypeUint16, []uint64{uint64(args[0]), uint64(args[2])}))
			return true, nil
		})
	b, args, result := batchOf(
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", nullable(sctx, int32s(1, 2), 0)),
		column("else", int32s(3, 4)),
	)
	err := expr.NewMultiIf(sctx, expr.WithEvaluators(eval)).Exec(b, args, result)
	assert.ErrorContains(t, err, "not a branch")
	assert.Nil(t, b.Columns[result].Vec)
}

func TestNoApplicableEvaluator(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	b, args, result := batchOf(
		column("c", vector.NewBoolFromValues(true)),
		column("then", int32s(1)),
		column("else", int32s(2)),
	)
	f := expr.NewMultiIf(cond.NewContext(), expr.WithEvaluators(), expr.WithLogger(zap.New(core)))
	err := f.Exec(b, args, result)
	assert.ErrorIs(t, err, expr.ErrNoApplicableEvaluator)
	assert.Contains(t, err.Error(), "internal error")
	assert.Nil(t, b.Columns[result].Vec)
	assert.Equal(t, 1, logs.Len())
}

func TestMetrics(t *testing.T) {
	sctx := cond.NewContext()
	reg := prometheus.NewRegistry()
	f := expr.NewMultiIf(sctx, expr.WithMetrics(expr.NewMetrics(reg)))
	exec(t, f,
		column("c", vector.NewConstBool(true, 2)),
		column("then", int32s(1, 2)),
		column("else", int32s(3, 4)),
	)
	exec(t, f,
		column("c", vector.NewBoolFromValues(true, false)),
		column("then", nullable(sctx, int32s(1, 2), 0)),
		column("else", int32s(3, 4)),
	)
	families, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			name := family.GetName()
			for _, label := range m.GetLabel() {
				name += "/" + label.GetValue()
			}
			counts[name] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"cond_multiif_batches_total/trivial":  1,
		"cond_multiif_batches_total/numeric":  1,
		"cond_multiif_nullable_batches_total": 1,
	}, counts)
}
