package orchestration

import (
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// NewWorker returns a worker serving BookingWorkflow and its activities on
// taskQueue. The caller starts and stops it.
func NewWorker(c client.Client, taskQueue string, activities *Activities) worker.Worker {
	w := worker.New(c, taskQueue, worker.Options{
		Identity:                               "booking-worker-" + hostname(),
		MaxConcurrentActivityExecutionSize:     100,
		MaxConcurrentWorkflowTaskExecutionSize: 50,
	})

	w.RegisterWorkflow(BookingWorkflow)
	w.RegisterActivity(activities)

	return w
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
