package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/returns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAutoCompleter struct {
	mock.Mock
}

func (m *MockAutoCompleter) Handle(ctx context.Context, cmd commands.AutoCompleteReturnsCommand) ([]*returns.ReturnRequest, error) {
	args := m.Called(ctx, cmd)
	completed, _ := args.Get(0).([]*returns.ReturnRequest)
	return completed, args.Error(1)
}

type MockJobMetrics struct {
	mock.Mock
}

func (m *MockJobMetrics) JobRun(job string, err error) {
	m.Called(job, err)
}

type MockJob struct {
	mock.Mock
}

func (m *MockJob) Start() error {
	return m.Called().Error(0)
}

func (m *MockJob) Stop() {
	m.Called()
}

func TestReturnCompletionJob_RunPassesClock(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	handler := new(MockAutoCompleter)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AutoCompleteReturnsCommand) bool {
		return cmd.Validate() == nil && cmd.Now().Equal(now)
	})).Return([]*returns.ReturnRequest{}, nil).Once()
	metrics := new(MockJobMetrics)
	metrics.On("JobRun", returnCompletionJobName, nil).Once()

	job := NewReturnCompletionJob(handler, "", metrics, slog.Default())
	job.now = func() time.Time { return now }
	job.Run(context.Background())

	handler.AssertExpectations(t)
	metrics.AssertExpectations(t)
	assert.Equal(t, DefaultReturnCompletionSchedule, job.schedule)
}

func TestReturnCompletionJob_RunLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	failure := errors.New("database is down")

	handler := new(MockAutoCompleter)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, failure).Once()
	metrics := new(MockJobMetrics)
	metrics.On("JobRun", returnCompletionJobName, failure).Once()

	NewReturnCompletionJob(handler, "", metrics, logger).Run(context.Background())

	metrics.AssertExpectations(t)
	assert.Contains(t, buf.String(), "Return completion job failed")
	assert.Contains(t, buf.String(), "component=return_completion_job")
}

func TestReturnCompletionJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewReturnCompletionJob(new(MockAutoCompleter), "not a schedule", nil, slog.Default())
	require.Error(t, job.Start())
}

func TestReturnCompletionJob_StartAndStop(t *testing.T) {
	job := NewReturnCompletionJob(new(MockAutoCompleter), "0 0 0 1 1 *", nil, slog.Default())
	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	first := new(MockJob)
	first.On("Start").Return(nil).Once()
	first.On("Stop").Once()
	second := new(MockJob)
	second.On("Start").Return(errors.New("bad schedule")).Once()

	err := NewJobManager(first, second).StartAll()

	require.ErrorContains(t, err, "failed to start job 1")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAllInReverseOrder(t *testing.T) {
	var order []string
	first := new(MockJob)
	first.On("Start").Return(nil)
	first.On("Stop").Run(func(mock.Arguments) { order = append(order, "first") })
	second := new(MockJob)
	second.On("Start").Return(nil)
	second.On("Stop").Run(func(mock.Arguments) { order = append(order, "second") })

	jm := NewJobManager(first, second)
	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"second", "first"}, order)
}
