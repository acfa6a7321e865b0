package root

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/cli/logflags"
	"github.com/brimdata/cond/cli/outputflags"
	"github.com/brimdata/cond/pkg/charm"
	condrt "github.com/brimdata/cond/runtime"
	"github.com/brimdata/cond/runtime/vam/expr"
	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/sio/anyio"
	"github.com/brimdata/cond/vector"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var Cond = &charm.Spec{
	Name:  "cond",
	Usage: "cond [options] file ...",
	Short: "evaluate conditional functions over column batches",
	Long: `
The "cond" command evaluates a conditional function call over a batch of
columns for each job file given on the command line and writes the result
column of each job, in order, to standard output or to the file named by -o.

A job file is YAML naming the function in "call", its argument columns in
"args" and the batch in "columns", e.g.,

  call: multiIf
  args: [c, x, y]
  columns:
    - {name: c, type: bool, values: [true, false]}
    - {name: x, type: int8, values: [1, 2]}
    - {name: y, type: nullable(uint8), values: [3, null]}

The functions are multiIf, if, caseWithoutExpression, caseWithExpression,
transform and array.  Job files may be gzip or zstd compressed and "-"
reads a job from standard input.

Jobs run concurrently, at most -P at a time.  With -types, only the result
type of each job is printed.  With -stats, per-evaluator batch counts are
printed to standard error when all jobs are done.
`,
	New: New,
}

type Command struct {
	logFlags    logflags.Flags
	outputFlags outputflags.Flags
	parallel    int
	stats       bool
	types       bool
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.logFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
	f.IntVar(&c.parallel, "P", runtime.GOMAXPROCS(0), "maximum number of jobs to run concurrently")
	f.BoolVar(&c.stats, "stats", false, "print evaluator statistics to stderr")
	f.BoolVar(&c.types, "types", false, "print result types instead of values")
	return c, nil
}

type result struct {
	typ cond.Type
	vec vector.Any
}

func (c *Command) Run(args []string) error {
	if len(args) == 0 {
		return charm.NeedHelp
	}
	if err := c.outputFlags.Init(); err != nil {
		return err
	}
	logger, closeLogger, err := c.logFlags.Open()
	if err != nil {
		return err
	}
	defer closeLogger()
	reg := prometheus.NewRegistry()
	metrics := expr.NewMetrics(reg)
	results := make([]result, len(args))
	group, ctx := errgroup.WithContext(context.Background())
	if c.parallel > 0 {
		group.SetLimit(c.parallel)
	}
	for k, path := range args {
		group.Go(func() error {
			r, err := c.runJob(ctx, logger, metrics, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[k] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	if c.types {
		for _, r := range results {
			fmt.Println(r.typ)
		}
	} else if err := c.write(context.Background(), results); err != nil {
		return err
	}
	if c.stats {
		return printStats(os.Stderr, reg)
	}
	return nil
}

func (c *Command) runJob(ctx context.Context, logger *zap.Logger, metrics *expr.Metrics, path string) (result, error) {
	job, err := anyio.ReadJob(path)
	if err != nil {
		return result{}, err
	}
	rctx := condrt.NewContext(ctx, cond.NewContext(), logger.With(zap.String("job", path)), metrics)
	defer rctx.Cancel()
	q, err := condrt.CompileQuery(rctx, job)
	if err != nil {
		return result{}, err
	}
	typ, err := q.Type()
	if err != nil || c.types {
		return result{typ: typ}, err
	}
	col, err := q.Run()
	if err != nil {
		return result{}, err
	}
	return result{typ: col.Type, vec: col.Vec}, nil
}

func (c *Command) write(ctx context.Context, results []result) error {
	w, err := c.outputFlags.Open()
	if err != nil {
		return err
	}
	vecs := make([]vector.Any, 0, len(results))
	for _, r := range results {
		vecs = append(vecs, r.vec)
	}
	err = sio.Copy(ctx, w, vecs...)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

func printStats(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			lines = append(lines, fmt.Sprintf("%s%s %g", family.GetName(), labels(m), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	var pairs []string
	for _, l := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
