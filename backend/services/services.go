// Package services holds the application state machine: lesson progression,
// assessments, enrollments and the dashboard. All state is read from and
// written to the store on every call.
package services

import (
	"math/rand"
	"sync"
	"time"

	"linguaplatform/backend/models"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

// Learner identifies the caller of a service operation.
type Learner struct {
	UserID string
	Email  string
	Role   models.Role
}

// Options tunes the service bundle. Zero values pick production defaults.
type Options struct {
	Now             func() time.Time
	Shuffle         func(n int) []int
	ShuffleOnRetake bool
}

// Services is the wired set of application services.
type Services struct {
	Catalog     *Catalog
	Users       *Users
	Enrollments *Enrollments
	Ledger      *Ledger
	Assessments *Assessments
	Annotations *Annotations
	Dashboard   *Dashboard
	Analytics   *Analytics
}

func New(repo *store.Repository, notifier Notifier, log *utils.Logger, opts Options) *Services {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.Shuffle == nil {
		opts.Shuffle = rand.Perm
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	locks := newProfileLocks()
	catalog := &Catalog{repo: repo, log: log.With("service", "catalog")}
	activity := &activityRecorder{repo: repo, now: opts.Now, log: log.With("service", "activity")}
	enrollments := &Enrollments{repo: repo, catalog: catalog, activity: activity, locks: locks, now: opts.Now}

	return &Services{
		Catalog:     catalog,
		Users:       &Users{repo: repo, activity: activity, locks: locks, now: opts.Now, log: log.With("service", "users")},
		Enrollments: enrollments,
		Ledger: &Ledger{
			repo: repo, catalog: catalog, enrollments: enrollments, activity: activity,
			notifier: notifier, locks: locks, now: opts.Now, log: log.With("service", "ledger"),
		},
		Assessments: &Assessments{
			repo: repo, catalog: catalog, enrollments: enrollments, activity: activity,
			locks: locks, now: opts.Now, shuffle: opts.Shuffle, shuffleOnRetake: opts.ShuffleOnRetake,
		},
		Annotations: &Annotations{repo: repo, catalog: catalog, enrollments: enrollments, locks: locks, now: opts.Now},
		Dashboard:   &Dashboard{repo: repo, catalog: catalog, now: opts.Now},
		Analytics:   &Analytics{repo: repo, catalog: catalog, now: opts.Now},
	}
}

// profileLocks serializes read-modify-write sequences per user.
type profileLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProfileLocks() *profileLocks {
	return &profileLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *profileLocks) lock(userID string) func() {
	p.mu.Lock()
	m, ok := p.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		p.locks[userID] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
