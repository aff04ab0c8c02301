package auth

import "sync"

// scheduler is a single-goroutine task queue providing "run on next tick"
// semantics: a posted task runs after the caller's current call stack
// completes, in FIFO order relative to other posted tasks. The session
// manager uses it for the two deliberate deferral points (startup
// resumption, logout broadcast) so observers never see a status flip
// mid-synchronous-call-stack.
type scheduler struct {
	tasks   chan func()
	stop    chan struct{}
	stopped sync.Once
	done    chan struct{}
}

func newScheduler() *scheduler {
	s := &scheduler{
		tasks: make(chan func(), 64),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *scheduler) loop() {
	defer close(s.done)
	for {
		select {
		case task := <-s.tasks:
			task()
		case <-s.stop:
			// Drain anything already queued before exiting.
			for {
				select {
				case task := <-s.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Post enqueues a task. Posting after Close is a no-op.
func (s *scheduler) Post(task func()) {
	if task == nil {
		return
	}
	select {
	case <-s.stop:
	case s.tasks <- task:
	}
}

// Close stops the loop after draining queued tasks.
func (s *scheduler) Close() {
	s.stopped.Do(func() { close(s.stop) })
	<-s.done
}
