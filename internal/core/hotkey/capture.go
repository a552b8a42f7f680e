package hotkey

import (
	"context"
	"errors"
	"time"

	"multitimer/internal/core/validate"
)

// ErrCaptureActive indicates a capture session is already in progress.
var ErrCaptureActive = errors.New("capture already in progress")

// settleDelay is how long the manager waits after the last key release
// before treating the captured combination as final.
const settleDelay = 100 * time.Millisecond

// Snapshot is one observation of a pending capture combination.
type Snapshot struct {
	// Pending is the combination currently held, possibly incomplete
	// (modifiers-only). Meant for "press keys..." feedback.
	Pending string
	// Result is the canonical hotkey string, set on the final snapshot.
	Result string
	// Err reports why the captured combination was rejected.
	Err error
	// Done marks the final snapshot; the channel closes after it.
	Done bool
	// Canceled is set when Escape was pressed or the context ended.
	// The caller must restore the binding it snapshotted beforehand.
	Canceled bool
}

type captureSession struct {
	ch       chan Snapshot
	done     chan struct{}
	captured map[Code]struct{}
	settle   *time.Timer
	closed   bool
}

func (session *captureSession) emit(snapshot Snapshot) {
	if session.closed {
		return
	}
	select {
	case session.ch <- snapshot:
	default:
	}
}

func (session *captureSession) finish(snapshot Snapshot) {
	if session.closed {
		return
	}
	if session.settle != nil {
		session.settle.Stop()
	}
	session.emit(snapshot)
	session.closed = true
	close(session.ch)
	close(session.done)
}

// Capture starts an interactive capture session. While the session is
// live, normal hotkey dispatch is suppressed. The returned stream is
// finite: it ends with a Done snapshot on release-and-settle, on Escape,
// or when ctx is canceled.
func (manager *Manager) Capture(ctx context.Context) (<-chan Snapshot, error) {
	manager.mu.Lock()
	if manager.session != nil {
		manager.mu.Unlock()
		return nil, ErrCaptureActive
	}
	session := &captureSession{
		ch:       make(chan Snapshot, 16),
		done:     make(chan struct{}),
		captured: map[Code]struct{}{},
	}
	manager.session = session
	manager.mu.Unlock()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				manager.cancelCapture(session)
			case <-session.done:
			}
		}()
	}

	return session.ch, nil
}

// CancelCapture aborts the current capture session, if any.
func (manager *Manager) CancelCapture() {
	manager.mu.Lock()
	session := manager.session
	manager.mu.Unlock()
	if session != nil {
		manager.cancelCapture(session)
	}
}

func (manager *Manager) cancelCapture(session *captureSession) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.session != session {
		return
	}
	manager.session = nil
	session.finish(Snapshot{Canceled: true, Done: true})
}

func (manager *Manager) handleCaptureEventLocked(event KeyEvent) {
	session := manager.session

	if event.Pressed && event.Code == CodeEscape {
		manager.session = nil
		session.finish(Snapshot{Canceled: true, Done: true})
		return
	}

	if event.Pressed {
		if session.settle != nil {
			session.settle.Stop()
			session.settle = nil
		}
		session.captured[event.Code] = struct{}{}
		session.emit(Snapshot{Pending: Display(capturedCodes(session))})
		return
	}

	// All keys released with something captured: wait for the combination
	// to settle before finalizing, in case another key follows.
	if len(manager.pressed) == 0 && len(session.captured) > 0 {
		if session.settle != nil {
			session.settle.Stop()
		}
		session.settle = time.AfterFunc(settleDelay, func() {
			manager.finalizeCapture(session)
		})
	}
}

func (manager *Manager) finalizeCapture(session *captureSession) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.session != session || len(manager.pressed) > 0 {
		return
	}
	manager.session = nil

	codes := capturedCodes(session)
	canonical, err := Normalize(codes)
	if err != nil {
		var verr *validate.Error
		if !errors.As(err, &verr) {
			err = &validate.Error{Field: "hotkey", Rule: "has an invalid format"}
		}
		session.finish(Snapshot{Pending: Display(codes), Err: err, Done: true})
		return
	}
	session.finish(Snapshot{Pending: canonical, Result: canonical, Done: true})
}

func capturedCodes(session *captureSession) []Code {
	codes := make([]Code, 0, len(session.captured))
	for code := range session.captured {
		codes = append(codes, code)
	}
	return codes
}
