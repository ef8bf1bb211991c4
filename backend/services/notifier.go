package services

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"linguaplatform/backend/utils"
)

// CompletionEvent is emitted the first time a learner completes a course.
type CompletionEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	CompletedAt time.Time `json:"completedAt"`
}

// Notifier receives course-completion events. Implementations must not block
// for long; delivery failures are theirs to log.
type Notifier interface {
	CourseCompleted(ctx context.Context, ev CompletionEvent)
}

type LogNotifier struct {
	log *utils.Logger
}

func NewLogNotifier(log *utils.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("service", "notifier")}
}

func (n *LogNotifier) CourseCompleted(_ context.Context, ev CompletionEvent) {
	n.log.Info("course completed", "course_id", ev.CourseID, "user_id", ev.UserID)
}

// RedisNotifier publishes events as JSON on a redis channel.
type RedisNotifier struct {
	rdb     *goredis.Client
	channel string
	log     *utils.Logger
}

func NewRedisNotifier(rdb *goredis.Client, channel string, log *utils.Logger) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel, log: log.With("service", "RedisNotifier")}
}

func (n *RedisNotifier) CourseCompleted(ctx context.Context, ev CompletionEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		n.log.Error("encode completion event", "error", err)
		return
	}
	if err := n.rdb.Publish(ctx, n.channel, raw).Err(); err != nil {
		n.log.Warn("publish completion event", "channel", n.channel, "error", err)
	}
}

// Notifiers fans an event out to every notifier in order.
type Notifiers []Notifier

func (ns Notifiers) CourseCompleted(ctx context.Context, ev CompletionEvent) {
	for _, n := range ns {
		n.CourseCompleted(ctx, ev)
	}
}
