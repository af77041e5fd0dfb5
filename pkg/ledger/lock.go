package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrLockWaitExpired is returned when exclusive processing rights for an
// account could not be acquired within the wait budget. It is an
// infrastructure failure: the caller's transaction stays pending and is
// never recorded as failed.
var ErrLockWaitExpired = errors.New("timed out waiting for account lock")

// DefaultLockWait bounds how long a processing attempt blocks on a
// contended account before giving up.
const DefaultLockWait = 500 * time.Millisecond

type accountLock struct {
	sem  chan struct{}
	refs int
}

// LockCoordinator grants at-most-one active processing unit per account.
// Locks are keyed by account ID and created on demand; an entry is
// dropped again once nobody holds or waits for it, so the map does not
// grow with the account population.
//
// Acquisition blocks with a bounded wait. On timeout the caller gets
// ErrLockWaitExpired and must fail the request; it never proceeds
// unserialized.
type LockCoordinator struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*accountLock
	wait  time.Duration
}

// NewLockCoordinator returns a coordinator with the given wait budget.
// A non-positive wait falls back to DefaultLockWait.
func NewLockCoordinator(wait time.Duration) *LockCoordinator {
	if wait <= 0 {
		wait = DefaultLockWait
	}
	return &LockCoordinator{
		locks: make(map[uuid.UUID]*accountLock),
		wait:  wait,
	}
}

// Acquire obtains exclusive processing rights for accountID, blocking up
// to the wait budget or until ctx is done. On success it returns a
// release function, which must be called exactly once and is safe to
// defer on every path.
func (c *LockCoordinator) Acquire(ctx context.Context, accountID uuid.UUID) (release func(), err error) {
	c.mu.Lock()
	l, ok := c.locks[accountID]
	if !ok {
		l = &accountLock{sem: make(chan struct{}, 1)}
		c.locks[accountID] = l
	}
	l.refs++
	c.mu.Unlock()

	timer := time.NewTimer(c.wait)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-l.sem
				c.put(accountID, l)
			})
		}, nil
	case <-timer.C:
		c.put(accountID, l)
		return nil, ErrLockWaitExpired
	case <-ctx.Done():
		c.put(accountID, l)
		return nil, ctx.Err()
	}
}

// put drops one reference and removes the map entry when unused.
func (c *LockCoordinator) put(accountID uuid.UUID, l *accountLock) {
	c.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, accountID)
	}
	c.mu.Unlock()
}
