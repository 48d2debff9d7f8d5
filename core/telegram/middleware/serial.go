package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// userLocks hands out one mutex per user and frees it when nobody waits on it.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) acquire(id int64) *userLock {
	l.mu.Lock()
	ul, ok := l.locks[id]
	if !ok {
		ul = &userLock{}
		l.locks[id] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return ul
}

func (l *userLocks) release(id int64, ul *userLock) {
	ul.mu.Unlock()

	l.mu.Lock()
	ul.refs--
	if ul.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// SerializeByUser processes updates of one user strictly one at a time while
// updates of different users still run concurrently.
func SerializeByUser() tele.MiddlewareFunc {
	locks := &userLocks{locks: make(map[int64]*userLock)}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			ul := locks.acquire(user.ID)
			defer locks.release(user.ID, ul)
			return next(c)
		}
	}
}
