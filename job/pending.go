package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pixurl/images"
	"pixurl/logger"
	"pixurl/models"
	writerbackends "pixurl/writerBackends"

	"github.com/google/uuid"
)

// JobState represents the current state of a job
type JobState int

const (
	JobStatePending JobState = iota
	JobStateProcessing
	JobStateCompleted
	JobStateFailed
	JobStateCancelled
)

func (s JobState) String() string {
	switch s {
	case JobStatePending:
		return "pending"
	case JobStateProcessing:
		return "processing"
	case JobStateCompleted:
		return "completed"
	case JobStateFailed:
		return "failed"
	case JobStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrNotCancellable   = errors.New("job cannot be cancelled")
	ErrMissingSource    = errors.New("publish request has no source")
	ErrUnsupportedWrite = errors.New("unsupported publish target")
)

// Status is the externally visible view of a job
type Status struct {
	ID     string   `json:"id"`
	State  JobState `json:"-"`
	Name   string   `json:"state"`
	Object string   `json:"object,omitempty"` // manifest object name once completed
	Error  string   `json:"error,omitempty"`
}

type entry struct {
	req        models.PublishRequest
	status     Status
	finishedAt time.Time // zero while pending or processing
}

var (
	pendingJobs []string          // job ids in submission order
	jobs        = map[string]*entry{}
	wake        = make(chan struct{}, 1)
	mu          sync.RWMutex
)

// Enqueue validates req and queues it for publishing. It returns the job id.
func Enqueue(req models.PublishRequest) (string, error) {
	if req.Source == "" {
		return "", ErrMissingSource
	}
	if !writerbackends.Supported(req.Target.Type) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedWrite, req.Target.Type)
	}

	id := uuid.NewString()

	mu.Lock()
	pendingJobs = append(pendingJobs, id)
	jobs[id] = &entry{req: req, status: Status{ID: id, State: JobStatePending}}
	mu.Unlock()

	select {
	case wake <- struct{}{}:
	default:
	}

	logger.Infof("Queued publish job %s for %s (%s)", id, req.Source, req.Target.Type)
	return id, nil
}

// GetStatus returns the status of a job
func GetStatus(id string) (Status, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, exists := jobs[id]
	if !exists {
		return Status{}, false
	}
	s := e.status
	s.Name = s.State.String()
	return s, true
}

// GetJobState returns the current state of a job
func GetJobState(id string) (JobState, bool) {
	s, exists := GetStatus(id)
	return s.State, exists
}

// CancelJob cancels a job that has not started yet
func CancelJob(id string) error {
	mu.Lock()
	defer mu.Unlock()

	e, exists := jobs[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if e.status.State != JobStatePending {
		return fmt.Errorf("%w: job %s is %s", ErrNotCancellable, id, e.status.State)
	}

	removePending(id)
	e.status.State = JobStateCancelled
	e.finishedAt = time.Now()
	logger.Infof("Cancelled publish job %s", id)
	return nil
}

// GetPendingJobs returns a copy of the pending job ids
func GetPendingJobs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, len(pendingJobs))
	copy(ids, pendingJobs)
	return ids
}

// removePending drops id from the pending list; callers hold mu
func removePending(id string) {
	for i, p := range pendingJobs {
		if p == id {
			pendingJobs = append(pendingJobs[:i], pendingJobs[i+1:]...)
			return
		}
	}
}

// next moves the oldest pending job to processing
func next() (string, models.PublishRequest, bool) {
	mu.Lock()
	defer mu.Unlock()
	if len(pendingJobs) == 0 {
		return "", models.PublishRequest{}, false
	}
	id := pendingJobs[0]
	pendingJobs = pendingJobs[1:]
	e := jobs[id]
	e.status.State = JobStateProcessing
	return id, e.req, true
}

func finish(id, object string, err error) {
	mu.Lock()
	defer mu.Unlock()
	e := jobs[id]
	e.finishedAt = time.Now()
	switch {
	case err == nil:
		e.status.State = JobStateCompleted
		e.status.Object = object
	case errors.Is(err, context.Canceled):
		e.status.State = JobStateCancelled
		e.status.Error = err.Error()
	default:
		e.status.State = JobStateFailed
		e.status.Error = err.Error()
	}
}

// PruneFinished forgets completed, failed and cancelled jobs that finished
// more than maxAge ago and returns how many were removed. Failure records stay
// in the failure store.
func PruneFinished(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	mu.Lock()
	defer mu.Unlock()
	removed := 0
	for id, e := range jobs {
		if !e.finishedAt.IsZero() && e.finishedAt.Before(cutoff) {
			delete(jobs, id)
			removed++
		}
	}
	return removed
}

// ProcessPendingJobs publishes every pending job once, in order
func ProcessPendingJobs(ctx context.Context, client *images.Client) {
	for ctx.Err() == nil {
		id, req, ok := next()
		if !ok {
			return
		}
		object, err := ProcessJob(ctx, client, id, req)
		finish(id, object, err)
		if err != nil {
			logger.Errorf("Failed to process publish job %s: %v", id, err)
		} else {
			logger.Infof("Published job %s as %s", id, object)
		}
	}
}

// Run processes jobs until ctx is done. New jobs are picked up immediately;
// the ticker is a fallback.
func Run(ctx context.Context, client *images.Client) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		ProcessPendingJobs(ctx, client)
		select {
		case <-ctx.Done():
			return
		case <-wake:
		case <-ticker.C:
		}
	}
}
