package frames

import (
	"image"
	"sync"
	"time"

	"github.com/go-drift/driftgif/pkg/animation"
	"github.com/go-drift/driftgif/pkg/errors"
	"github.com/go-drift/driftgif/pkg/gifdecoder"
	"github.com/go-drift/driftgif/pkg/platform"
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// PayloadID keys shared cache entries. Frames are not cached without it.
	PayloadID string
	// Decoder must already be bound to the payload.
	Decoder gifdecoder.Decoder
	// Buffers supplies transformation output buffers and takes back released
	// frames. Nil allocates per frame.
	Buffers gifdecoder.BufferProvider
	// Transformation is read on the UI thread when a request is made.
	// Nil, or a nil result, means Identity.
	Transformation func() Transformation
	// TargetWidth and TargetHeight are handed to the transformation.
	TargetWidth  int
	TargetHeight int
	// Cache optionally shares transformed frames across instances.
	Cache Cache
	// Dispatch delivers completions on the UI thread. Nil uses platform.Dispatch.
	Dispatch func(func()) bool
}

// dispatchRetry paces delivery attempts while no UI thread accepts them.
const dispatchRetry = 50 * time.Millisecond

// Manager is the default Producer. It runs one goroutine per request.
type Manager struct {
	cfg ManagerConfig

	mu       sync.Mutex
	inFlight bool
	waiting  []request
	cleared  bool
	stop     chan struct{}
	nextAt   time.Time
}

// request is a frame request with the transformation captured when it was
// made.
type request struct {
	cb Callback
	t  Transformation
}

var _ Producer = (*Manager)(nil)

// NewManager creates a producer for a bound decoder.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Buffers == nil {
		cfg.Buffers = gifdecoder.AllocProvider{}
	}
	if cfg.Dispatch == nil {
		cfg.Dispatch = platform.Dispatch
	}
	return &Manager{cfg: cfg, stop: make(chan struct{})}
}

// RequestNextFrame starts producing the frame after the current one.
//
// A request made while another is in flight is reported and queued behind
// it. A request made after ReleaseResources completes with a nil frame.
func (m *Manager) RequestNextFrame(cb Callback) {
	if cb == nil {
		return
	}
	r := request{cb: cb, t: Identity{}}
	if m.cfg.Transformation != nil {
		if cur := m.cfg.Transformation(); cur != nil {
			r.t = cur
		}
	}

	m.mu.Lock()
	if m.inFlight {
		m.waiting = append(m.waiting, r)
		m.mu.Unlock()
		m.report(errors.KindProduction, errors.ErrBusy)
		return
	}
	m.inFlight = true
	m.mu.Unlock()
	m.start(r)
}

func (m *Manager) start(r request) {
	m.mu.Lock()
	cleared := m.cleared
	m.mu.Unlock()

	if cleared {
		go m.deliver(r.cb, nil)
		return
	}
	go m.produce(r.cb, r.t)
}

func (m *Manager) produce(cb Callback, t Transformation) {
	delivered := false
	defer errors.RecoverWithCallback("frames.Manager.produce", func(any) {
		if !delivered {
			m.deliver(cb, nil)
		}
	})

	dec := m.cfg.Decoder
	dec.Advance()
	index := dec.CurrentFrameIndex()
	delay := dec.NextDelay()

	frame, err := m.frameFor(index, delay, t)
	if err != nil {
		if !errors.Is(err, errors.ErrCleared) {
			m.report(errors.KindProduction, err)
		}
		// Failed requests still advance the loop; pace them so a broken
		// payload does not spin.
		delay = max(delay, gifdecoder.MinFrameDelay)
	}

	m.mu.Lock()
	wait := animation.Until(m.nextAt)
	m.mu.Unlock()
	if wait > 0 {
		select {
		case <-animation.After(wait):
		case <-m.stop:
			frame.Release()
			frame = nil
		}
	}

	m.mu.Lock()
	m.nextAt = animation.Now().Add(delay)
	m.mu.Unlock()

	delivered = true
	m.deliver(cb, frame)
}

// frameFor returns frame index, from the shared cache when possible.
func (m *Manager) frameFor(index int, delay time.Duration, t Transformation) (*Frame, error) {
	key := CacheKey{
		PayloadID: m.cfg.PayloadID,
		Index:     index,
		Transform: t.ID(),
		Width:     m.cfg.TargetWidth,
		Height:    m.cfg.TargetHeight,
	}
	cacheable := m.cfg.Cache != nil && m.cfg.PayloadID != ""
	if cacheable {
		if img, ok := m.cfg.Cache.Get(key); ok {
			errors.Debugf("frames.Manager", "cache hit %s #%d", key.PayloadID, index)
			return NewFrame(img, index, delay, nil), nil
		}
	}

	raw, err := m.cfg.Decoder.NextFrame()
	if err != nil {
		return nil, err
	}
	out := t.Transform(raw, m.cfg.TargetWidth, m.cfg.TargetHeight, m.cfg.Buffers)
	if out != raw {
		m.cfg.Buffers.Release(raw)
	}

	if cacheable {
		m.cfg.Cache.Put(key, out)
		return NewFrame(out, index, delay, nil), nil
	}
	return NewFrame(out, index, delay, m.releaseBuffer), nil
}

func (m *Manager) releaseBuffer(img *image.RGBA) {
	m.cfg.Buffers.Release(img)
}

// deliver hands frame to cb on the UI thread. While no dispatcher accepts
// the completion it retries every dispatchRetry. Once resources are released
// the frame is dropped and a nil completion is attempted one last time.
func (m *Manager) deliver(cb Callback, frame *Frame) {
	dispatch := func() bool {
		return m.cfg.Dispatch(func() {
			m.finish()
			cb.OnFrameReady(frame)
		})
	}
	if dispatch() {
		return
	}
	m.report(errors.KindProduction, errors.ErrNoDispatcher)
	for {
		select {
		case <-animation.After(dispatchRetry):
			if dispatch() {
				return
			}
		case <-m.stop:
			frame.Release()
			frame = nil
			if !dispatch() {
				errors.Debugf("frames.Manager", "%s: completion abandoned after release", m.cfg.PayloadID)
				m.abandon()
			}
			return
		}
	}
}

// finish ends the current request and starts the next queued one.
func (m *Manager) finish() {
	m.mu.Lock()
	if len(m.waiting) == 0 {
		m.inFlight = false
		m.mu.Unlock()
		return
	}
	next := m.waiting[0]
	m.waiting = m.waiting[1:]
	m.mu.Unlock()
	m.start(next)
}

// abandon drops the current request and everything queued behind it.
func (m *Manager) abandon() {
	m.mu.Lock()
	m.inFlight = false
	m.waiting = nil
	m.mu.Unlock()
}

// ReleaseResources stops scheduling and clears the decoder. A request in
// flight stops waiting and completes with a nil frame.
func (m *Manager) ReleaseResources() {
	m.mu.Lock()
	if m.cleared {
		m.mu.Unlock()
		return
	}
	m.cleared = true
	close(m.stop)
	m.mu.Unlock()

	m.cfg.Decoder.Clear()
	errors.Debugf("frames.Manager", "released %s", m.cfg.PayloadID)
}

// InFlight reports whether a request is outstanding.
func (m *Manager) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

func (m *Manager) report(kind errors.ErrorKind, err error) {
	errors.Report(&errors.PlaybackError{
		Op:        "frames.Manager",
		Kind:      kind,
		PayloadID: m.cfg.PayloadID,
		Err:       err,
	})
}
