package services

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguaplatform/backend/utils"
)

func TestNotifiersFanOut(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	ns := Notifiers{a, NewLogNotifier(utils.NopLogger()), b}
	ns.CourseCompleted(context.Background(), CompletionEvent{CourseID: "es-101"})
	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
}

func TestRedisNotifierPublishes(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer rdb.Close()
	sub := rdb.Subscribe(ctx, "test-course-events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := NewRedisNotifier(rdb, "test-course-events", utils.NopLogger())
	n.CourseCompleted(ctx, CompletionEvent{Type: "course_completed", CourseID: "es-101", UserID: "u1"})

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var ev CompletionEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, "es-101", ev.CourseID)
	assert.Equal(t, "u1", ev.UserID)
}
