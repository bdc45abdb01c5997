package sourcefakes

import (
	"context"
	"sync"

	"github.com/classpoint/classpoint-go/session"
)

var _ session.Source = (*FakeSource)(nil)

// FakeSource is a test double that serves a fixed session (or error) and
// counts fetches.
type FakeSource struct {
	lock       sync.Mutex
	session    *session.Session
	err        error
	fetchCount int

	// Block, when non-nil, is closed by the test to release in-flight
	// fetches. Used to hold concurrent callers on a single fetch.
	Block chan struct{}
}

func NewFakeSource(s *session.Session) *FakeSource {
	return &FakeSource{session: s}
}

func (fs *FakeSource) FetchSession(ctx context.Context) (*session.Session, error) {
	fs.lock.Lock()
	fs.fetchCount++
	block := fs.Block
	s, err := fs.session, fs.err
	fs.lock.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s, err
}

// SetSession swaps the session served by subsequent fetches.
func (fs *FakeSource) SetSession(s *session.Session) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.session = s
}

// SetError makes subsequent fetches fail with err.
func (fs *FakeSource) SetError(err error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.err = err
}

// FetchCount returns the number of FetchSession calls so far.
func (fs *FakeSource) FetchCount() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.fetchCount
}
