package tasks

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushTasksRoundTrip(t *testing.T) {
	task, opts, err := NewRequestPushTask("biz-1", "req-1")
	require.NoError(t, err)
	assert.Equal(t, TypeRequestPush, task.Type())
	assert.Len(t, opts, 3)

	p, err := DecodePushPayload(task)
	require.NoError(t, err)
	assert.Equal(t, PushPayload{BusinessID: "biz-1", RecordID: "req-1"}, p)

	task, _, err = NewActionPushTask("biz-1", "act-1")
	require.NoError(t, err)
	assert.Equal(t, TypeActionPush, task.Type())
}

func TestDecodePushPayloadSkipsRetryOnBadInput(t *testing.T) {
	for name, body := range map[string]string{
		"not json":    "{",
		"no record":   `{"businessId":"biz-1"}`,
		"no business": `{"recordId":"req-1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePushPayload(asynq.NewTask(TypeRequestPush, []byte(body)))
			assert.True(t, errors.Is(err, asynq.SkipRetry))
		})
	}
}
