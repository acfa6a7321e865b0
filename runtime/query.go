package runtime

import (
	"fmt"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
	"github.com/brimdata/cond/runtime/vam/expr/function"
	"github.com/brimdata/cond/sio/yamlio"
	"github.com/brimdata/cond/vector"
)

// Query is a function call bound to the columns of a batch.
type Query struct {
	fn     expr.Function
	batch  *vector.Batch
	args   []int
	result int
}

// CompileQuery builds the batch of job and binds its call.  Unknown
// functions, bad argument counts and missing columns are reported here;
// type errors are left to Type and Run.
func CompileQuery(rctx *Context, job *yamlio.Job) (*Query, error) {
	batch, err := job.Build(rctx.Sctx)
	if err != nil {
		return nil, err
	}
	args := make([]int, 0, len(job.Args))
	for _, name := range job.Args {
		k := lookupColumn(batch, name)
		if k < 0 {
			return nil, fmt.Errorf("no column named %q", name)
		}
		args = append(args, k)
	}
	fn, err := function.New(rctx.Sctx, job.Call, len(args),
		expr.WithLogger(rctx.Logger.Named(job.Call)),
		expr.WithMetrics(rctx.Metrics),
	)
	if err != nil {
		return nil, err
	}
	return &Query{
		fn:     fn,
		batch:  batch,
		args:   args,
		result: batch.Append(vector.Column{Name: job.Call}),
	}, nil
}

func lookupColumn(b *vector.Batch, name string) int {
	for k, c := range b.Columns {
		if c.Name == name {
			return k
		}
	}
	return -1
}

// Type returns the result type of the call.
func (q *Query) Type() (cond.Type, error) {
	return q.fn.ReturnType(q.batch.Types(q.args))
}

// Run evaluates the call and returns the result column.  Run may be
// called more than once and returns the same result each time.
func (q *Query) Run() (vector.Column, error) {
	if err := q.fn.Exec(q.batch, q.args, q.result); err != nil {
		return vector.Column{}, err
	}
	return q.batch.Columns[q.result], nil
}
