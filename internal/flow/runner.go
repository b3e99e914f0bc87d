package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Runner owns the queue, starts/stops workers, and submits flows. Flows from
// one caller are awaited synchronously; the queue only bounds how many callers
// can be in flight at once.
type Runner struct {
	logger     *logrus.Logger
	queue      chan flowItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

type flowItem struct {
	ctx      context.Context
	flow     Flow
	response chan flowResponse
}

type flowResponse struct {
	err error
}

func NewRunner(logger *logrus.Logger, numWorkers int) *Runner {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Runner{
		logger:     logger,
		queue:      make(chan flowItem, 1000),
		numWorkers: numWorkers,
	}
}

func (r *Runner) Start() {
	for i := 0; i < r.numWorkers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.run()
		}()
	}
}

func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.queue)
		r.wg.Wait()
	})
}

// Process submits a flow and waits for it to finish or the context to end.
// A context cancellation after submission does not stop the flow itself; the
// store-side effects of in-flight steps still commit.
func (r *Runner) Process(ctx context.Context, f Flow) error {
	respCh := make(chan flowResponse, 1)
	item := flowItem{
		ctx:      ctx,
		flow:     f,
		response: respCh,
	}

	r.queue <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) run() {
	for item := range r.queue {
		item.response <- flowResponse{err: r.processItem(item)}
	}
}

func (r *Runner) processItem(item flowItem) error {
	var completed []Step

	for _, step := range item.flow.Steps {
		err := step.Run(item.ctx)
		if err == nil {
			completed = append(completed, step)
			continue
		}

		entry := r.logger.WithError(err).WithFields(logrus.Fields{
			"flow": item.flow.Name,
			"step": step.Name,
		})
		if len(completed) > 0 {
			entry = entry.WithField("completedSteps", stepNames(completed))
		}

		compensated := r.compensate(item.ctx, item.flow.Name, completed)
		if len(completed) > 0 && !compensated {
			entry.Error("Flow.step failed after committed steps; manual correction required")
		} else {
			entry.Error("Flow.step failed")
		}

		return fmt.Errorf("%s: %s: %w", item.flow.Name, step.Name, err)
	}

	return nil
}

// compensate walks completed steps backwards and runs their hooks. Reports
// whether every completed step had a hook that succeeded.
func (r *Runner) compensate(ctx context.Context, flowName string, completed []Step) bool {
	all := len(completed) > 0
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			all = false
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			all = false
			r.logger.WithError(err).WithFields(logrus.Fields{
				"flow": flowName,
				"step": step.Name,
			}).Error("Flow.compensation failed")
		}
	}
	return all
}

func stepNames(steps []Step) []string {
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name
	}
	return names
}
