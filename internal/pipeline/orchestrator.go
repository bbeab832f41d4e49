package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Orchestrator runs queued summarization jobs on a bounded worker pool.
// The sync API path calls the pipeline directly; this exists for file
// uploads, where parsing plus N model calls is too slow to hold a
// request open.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	run   Func
	log   *slog.Logger

	workerCount int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the job runner. run is the (possibly
// middleware-wrapped) summarization entry point.
func NewOrchestrator(run Func, workerCount, queueSize int, jobTTL time.Duration, log *slog.Logger) *Orchestrator {
	if workerCount <= 0 {
		workerCount = 4
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		jobs:        NewJobStore(jobTTL),
		queue:       make(chan *Job, queueSize),
		run:         run,
		log:         log,
		workerCount: workerCount,
	}
}

// Start launches worker goroutines and the job-store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID, "filename", job.Filename)
	job.SetStatus(StatusRunning)

	req := job.Request()
	req.OnProgress = job.SetProgress

	res, err := o.run(ctx, req)
	if err != nil {
		log.Error("job failed", "error", err)
		job.Fail(err)
		return
	}
	log.Info("job complete", "chunks", res.Chunks, "failed_chunks", res.FailedChunks)
	job.Complete(res)
}

// Stop gracefully shuts down the pool.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a job, failing fast when the queue is full.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		err := fmt.Errorf("job queue is full (%d)", cap(o.queue))
		job.Fail(err)
		return err
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
