package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake only moves when Advance or Set is called. Due callbacks run
// synchronously, in deadline order, on the advancing goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	clock *Fake
	seq   int
	at    time.Time
	fn    func()
	ch    chan time.Time
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	f.add(d, nil, ch)
	return ch
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.add(d, fn, nil)
}

// Pending returns the number of timers that have not fired or been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiters)
}

// Advance moves the clock forward by d, firing every timer that falls due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()
	f.Set(target)
}

// Set moves the clock to t. Timers armed by fired callbacks are honoured
// if they fall due before t.
func (f *Fake) Set(t time.Time) {
	for {
		f.mu.Lock()
		if len(f.waiters) == 0 || f.waiters[0].at.After(t) {
			if t.After(f.now) {
				f.now = t
			}
			f.mu.Unlock()
			return
		}
		w := f.waiters[0]
		f.waiters = f.waiters[1:]
		if w.at.After(f.now) {
			f.now = w.at
		}
		now := f.now
		f.mu.Unlock()

		if w.fn != nil {
			w.fn()
		} else {
			w.ch <- now
		}
	}
}

func (f *Fake) add(d time.Duration, fn func(), ch chan time.Time) *fakeWaiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < 0 {
		d = 0
	}
	f.seq++
	w := &fakeWaiter{clock: f, seq: f.seq, at: f.now.Add(d), fn: fn, ch: ch}
	f.waiters = append(f.waiters, w)
	sort.SliceStable(f.waiters, func(i, j int) bool {
		if f.waiters[i].at.Equal(f.waiters[j].at) {
			return f.waiters[i].seq < f.waiters[j].seq
		}
		return f.waiters[i].at.Before(f.waiters[j].at)
	})
	return w
}

func (w *fakeWaiter) Stop() bool {
	f := w.clock
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.waiters {
		if x == w {
			f.waiters = append(f.waiters[:i], f.waiters[i+1:]...)
			return true
		}
	}
	return false
}
