package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linguaplatform/backend/models"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []CompletionEvent
}

func (r *recordingNotifier) CourseCompleted(_ context.Context, ev CompletionEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// reversed is a deterministic stand-in for a random permutation.
func reversed(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

func quiz(n int) []models.Question {
	qs := make([]models.Question, n)
	for i := range qs {
		qs[i] = models.Question{
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % models.OptionsPerQuestion,
		}
	}
	return qs
}

const testCatalog = `
courses:
  - id: es-101
    title: Spanish Basics
    language: Spanish
    flag: "🇪🇸"
    level: beginner
    rating: 4.8
    price: 0
    description: Greetings and numbers
    instructor: Ana
    topics:
      - id: t1
        title: Greetings
        lessons:
          - {id: l1, title: Hola, order: 1, duration: 5}
          - {id: l2, title: Adios, order: 2, duration: 6}
  - id: fr-101
    title: French Basics
    language: French
    flag: "🇫🇷"
    level: beginner
    rating: 4.5
    price: 10
    description: Bonjour
    instructor: Luc
    topics:
      - id: t1
        title: Basics
        lessons:
          - {id: f1, title: Bonjour, order: 1, duration: 5}
      - id: t2
        title: Numbers
        lessons:
          - {id: f2, title: Un deux trois, order: 2, duration: 7}
          - {id: f3, title: Quatre, order: 3, duration: 7}
`

type fixture struct {
	svc      *Services
	repo     *store.Repository
	kv       *store.MemoryKV
	clock    *clock
	notifier *recordingNotifier
	admin    Learner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	repo := store.NewRepository(kv, utils.NopLogger())
	clk := &clock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	n := &recordingNotifier{}
	svc := New(repo, n, utils.NopLogger(), Options{Now: clk.now, Shuffle: reversed, ShuffleOnRetake: true})

	seeded, err := svc.Catalog.Seed(ctx, []byte(testCatalog))
	require.NoError(t, err)
	require.True(t, seeded)

	admin := Learner{UserID: "admin", Email: "admin@example.com", Role: models.RoleSuperAdmin}
	require.NoError(t, svc.Catalog.SetAssessment(ctx, admin, "es-101", quiz(10)))

	return &fixture{svc: svc, repo: repo, kv: kv, clock: clk, notifier: n, admin: admin}
}

func (f *fixture) learner(t *testing.T, name string) Learner {
	t.Helper()
	u, err := f.svc.Users.Register(context.Background(), name, name+"@example.com", "secret123")
	require.NoError(t, err)
	return Learner{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (f *fixture) enrolled(t *testing.T, name string, courses ...string) Learner {
	t.Helper()
	who := f.learner(t, name)
	for _, c := range courses {
		_, err := f.svc.Enrollments.Enroll(context.Background(), who, c)
		require.NoError(t, err)
	}
	return who
}
