package services

import (
	"context"
	"time"

	"linguaplatform/backend/progress"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

type activityRecorder struct {
	repo *store.Repository
	now  func() time.Time
	log  *utils.Logger
}

// record appends action to today's learningActivity entry. Failures are
// logged and swallowed: a lost activity entry must not fail the action
// that produced it.
func (a *activityRecorder) record(ctx context.Context, userID, email, action string) {
	p := a.repo.Profile(userID)
	la, err := p.Activity(ctx)
	if err != nil {
		a.log.Warn("load activity", "action", action, "error", err)
		return
	}
	la[email] = progress.RecordAction(la[email], a.now(), action)
	if err := p.SaveActivity(ctx, la); err != nil {
		a.log.Warn("save activity", "action", action, "error", err)
	}
}
