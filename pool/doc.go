// Package pool distributes conversion jobs to workers.
//
// Dispatcher is the submitting side of an asynq worker pool backed by Redis:
// it enqueues one laz:convert task per file and polls the inspector until each
// task is completed or archived. Consumer is the worker side; it runs the
// codec for every task it receives. Local offers the same contract with
// in-process goroutines for single-host runs and tests.
//
// Workers resolve the paths carried in a task on their own filesystem, so the
// input tree must be mounted at the same path on every worker host.
package pool
