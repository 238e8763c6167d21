package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weilun/chipscan/pkg/config"
	"github.com/weilun/chipscan/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestAddJobDuplicate(t *testing.T) {
	s := New(testLogger())

	require.NoError(t, s.AddJob(&stubJob{name: "scan", schedule: "@hourly"}))
	err := s.AddJob(&stubJob{name: "scan", schedule: "@daily"})
	assert.Error(t, err)
}

func TestAddJobInvalidSchedule(t *testing.T) {
	s := New(testLogger())

	err := s.AddJob(&stubJob{name: "scan", schedule: "not a cron expression"})
	assert.Error(t, err)
}

func TestRunNowRecordsHistory(t *testing.T) {
	s := New(testLogger())
	job := &stubJob{name: "scan", schedule: "@hourly"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow("scan"))
	waitFor(t, func() bool { return job.runs.Load() == 1 })
	waitFor(t, func() bool {
		records, err := s.History("scan")
		return err == nil && len(records) == 1
	})

	records, err := s.History("scan")
	require.NoError(t, err)
	assert.True(t, records[0].Success)
	assert.Empty(t, records[0].Error)
}

func TestRunNowUnknownJob(t *testing.T) {
	s := New(testLogger())
	assert.Error(t, s.RunNow("missing"))
}

func TestFailedJobRetries(t *testing.T) {
	s := New(testLogger())
	s.retryDelay = time.Millisecond

	job := &stubJob{name: "scan", schedule: "@hourly", err: errors.New("export not published")}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunNow("scan"))

	waitFor(t, func() bool { return job.runs.Load() == 3 }) // initial + 2 retries
	waitFor(t, func() bool {
		records, _ := s.History("scan")
		return len(records) == 1
	})

	records, err := s.History("scan")
	require.NoError(t, err)
	assert.False(t, records[0].Success)
	assert.Contains(t, records[0].Error, "export not published")
}
