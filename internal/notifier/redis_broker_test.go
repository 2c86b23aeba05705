package notifier_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/testutil"
)

func TestRedisBroker_PublishSubscribe(t *testing.T) {
	testRedis := testutil.SetupTestRedis(t)
	defer testRedis.Teardown(t)

	broker, err := notifier.NewRedisBroker(testRedis.URL)
	require.NoError(t, err)
	defer broker.Close()

	events, err := broker.Subscribe()
	require.NoError(t, err)

	sent := notifier.Event{
		Type: notifier.EventUserStatusChanged,
		Data: notifier.StatusChange{UserID: 7, Status: "approved"},
	}
	require.NoError(t, broker.Publish(sent))

	select {
	case payload := <-events:
		var got struct {
			Type string `json:"type"`
			Data struct {
				UserID uint   `json:"user_id"`
				Status string `json:"status"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, string(notifier.EventUserStatusChanged), got.Type)
		assert.Equal(t, uint(7), got.Data.UserID)
		assert.Equal(t, "approved", got.Data.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a published event on the subscription")
	}
}

func TestRedisBroker_BadURL(t *testing.T) {
	_, err := notifier.NewRedisBroker("not-a-redis-url")
	assert.Error(t, err)
}
