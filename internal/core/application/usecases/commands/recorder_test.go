package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecorder_Record_FailuresDoNotStopOtherEffects(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	entry := activity.NewEntry(activity.TypeOrder, "Order moved", time.Now())
	first := ports.Notification{RecipientID: kernel.NewUUID(), Category: ports.CategoryOrder, Message: "one"}
	second := ports.Notification{RecipientID: kernel.NewUUID(), Category: ports.CategoryOrder, Message: "two"}

	log := &MockActivityLog{}
	log.On("Append", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), entry).
		Return(errors.New("redis down")).Once()

	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, first).Return(errors.New("kafka down")).Once()
	notifier.On("Notify", mock.Anything, second).Return(nil).Once()

	metrics := &MockMetrics{}
	metrics.On("TransitionCommitted", "order", "accepted").Once()

	r := commands.NewRecorder(log, notifier, metrics, nil)
	assert.NotPanics(t, func() {
		r.Record(ctx, "order", "accepted", entry, first, second)
	})

	log.AssertExpectations(t)
	notifier.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestRecorder_ZeroValueRecordsNothing(t *testing.T) {
	var r commands.Recorder
	assert.NotPanics(t, func() {
		r.Record(t.Context(), "order", "accepted", activity.Entry{},
			ports.Notification{RecipientID: kernel.NewUUID()})
	})
}
