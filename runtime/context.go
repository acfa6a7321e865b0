package runtime

import (
	"context"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
	"go.uber.org/zap"
)

// Context provides the state shared by the queries of one run: the type
// context, the logger and the metrics the functions report to.
type Context struct {
	context.Context
	Sctx    *cond.Context
	Logger  *zap.Logger
	Metrics *expr.Metrics
	cancel  context.CancelFunc
}

func NewContext(ctx context.Context, sctx *cond.Context, logger *zap.Logger, metrics *expr.Metrics) *Context {
	ctx, cancel := context.WithCancel(ctx)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		Context: ctx,
		Sctx:    sctx,
		Logger:  logger,
		Metrics: metrics,
		cancel:  cancel,
	}
}

func DefaultContext() *Context {
	return NewContext(context.Background(), cond.NewContext(), nil, nil)
}

func (c *Context) Cancel() {
	c.cancel()
}
