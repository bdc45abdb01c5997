package refresherfakes

import (
	"context"
	"sync"

	"github.com/classpoint/classpoint-go/auth"
	"github.com/classpoint/classpoint-go/session"
)

var _ auth.Refresher = (*FakeRefresher)(nil)

// FakeRefresher is a test double that serves a fixed refreshed session (or
// error) and counts refresh calls.
type FakeRefresher struct {
	lock         sync.Mutex
	session      *session.Session
	err          error
	refreshCount int
}

func NewFakeRefresher(s *session.Session) *FakeRefresher {
	return &FakeRefresher{session: s}
}

func (fr *FakeRefresher) Refresh(ctx context.Context) (*session.Session, error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.refreshCount++
	if fr.err != nil {
		return nil, fr.err
	}
	return fr.session, nil
}

// SetError makes subsequent refreshes fail with err.
func (fr *FakeRefresher) SetError(err error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.err = err
}

// RefreshCount returns the number of Refresh calls so far.
func (fr *FakeRefresher) RefreshCount() int {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	return fr.refreshCount
}
