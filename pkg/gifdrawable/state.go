package gifdrawable

import (
	"github.com/google/uuid"

	"github.com/go-drift/driftgif/pkg/frames"
	"github.com/go-drift/driftgif/pkg/gifdecoder"
)

// DecoderFactory builds a fresh, unbound decoder for a new drawable.
type DecoderFactory func(buffers gifdecoder.BufferProvider) gifdecoder.Decoder

// ProducerFactory builds a fresh frame producer for a new drawable.
type ProducerFactory func(cfg frames.ManagerConfig) frames.Producer

// StateConfig describes the payload and initial tunables of a State.
type StateConfig struct {
	// ID identifies the payload for frame caching. Empty assigns a random UUID.
	ID string
	// Header is the parsed payload. Nil parses Data.
	Header *gifdecoder.Header
	// Data is the encoded payload. It is shared, never copied.
	Data []byte
	// TargetWidth and TargetHeight are handed to the frame transformation.
	// Zero uses the payload's logical screen size.
	TargetWidth  int
	TargetHeight int
	// BufferProvider recycles frame buffers. Nil uses a gifdecoder.PoolProvider.
	BufferProvider gifdecoder.BufferProvider
	// FrameTransformation maps decoded frames to displayed ones. Nil is Identity.
	FrameTransformation frames.Transformation
	// FinalWidth and FinalHeight are reported as the intrinsic size.
	// Zero uses the target size.
	FinalWidth  int
	FinalHeight int
	// Cache optionally shares transformed frames between instances.
	Cache frames.Cache
	// NewDecoder and NewProducer override the default collaborators.
	NewDecoder  DecoderFactory
	NewProducer ProducerFactory
}

// payload is the immutable part of a State. It is shared by reference by
// every State copied from the same original.
type payload struct {
	id           string
	header       *gifdecoder.Header
	data         []byte
	targetWidth  int
	targetHeight int
	buffers      gifdecoder.BufferProvider
	cache        frames.Cache
	newDecoder   DecoderFactory
	newProducer  ProducerFactory
}

// State is the configuration shared by drawables created from it.
//
// The payload is immutable. The frame transformation and final size are the
// only mutable fields; changing them through a drawable affects every
// drawable sharing the same State. [Drawable.Mutate] gives a drawable a
// private copy first.
//
// State is not safe for concurrent mutation; like drawables it belongs to the
// UI thread.
type State struct {
	payload *payload

	transformation frames.Transformation
	finalWidth     int
	finalHeight    int

	refs int
}

// NewState parses the payload if needed and fills in defaults.
func NewState(cfg StateConfig) (*State, error) {
	header := cfg.Header
	if header == nil {
		h, err := gifdecoder.ParseHeader(cfg.Data)
		if err != nil {
			return nil, err
		}
		header = h
	}

	p := &payload{
		id:           cfg.ID,
		header:       header,
		data:         cfg.Data,
		targetWidth:  cfg.TargetWidth,
		targetHeight: cfg.TargetHeight,
		buffers:      cfg.BufferProvider,
		cache:        cfg.Cache,
		newDecoder:   cfg.NewDecoder,
		newProducer:  cfg.NewProducer,
	}
	if p.id == "" {
		p.id = uuid.NewString()
	}
	if p.targetWidth <= 0 || p.targetHeight <= 0 {
		p.targetWidth, p.targetHeight = header.Width, header.Height
	}
	if p.buffers == nil {
		p.buffers = gifdecoder.NewPoolProvider()
	}

	s := &State{
		payload:        p,
		transformation: cfg.FrameTransformation,
		finalWidth:     cfg.FinalWidth,
		finalHeight:    cfg.FinalHeight,
	}
	if s.finalWidth <= 0 || s.finalHeight <= 0 {
		s.finalWidth, s.finalHeight = p.targetWidth, p.targetHeight
	}
	return s, nil
}

// CopyState returns a new State with the same payload and tunables as
// original. The payload is shared, not copied. A nil original yields an
// empty State whose drawables never produce frames.
func CopyState(original *State) *State {
	if original == nil {
		return &State{payload: &payload{}}
	}
	return &State{
		payload:        original.payload,
		transformation: original.transformation,
		finalWidth:     original.finalWidth,
		finalHeight:    original.finalHeight,
	}
}

// NewDrawable creates a drawable sharing s. It gets its own decoder and
// producer, and starts stopped, invisible and without a frame.
func (s *State) NewDrawable(opts ...Option) *Drawable {
	return newDrawable(s, opts...)
}

// ID returns the payload identity.
func (s *State) ID() string { return s.payload.id }

// Header returns the parsed payload.
func (s *State) Header() *gifdecoder.Header { return s.payload.header }

// Data returns the encoded payload. Callers must not modify it.
func (s *State) Data() []byte { return s.payload.data }

// TargetSize returns the size frames are transformed to.
func (s *State) TargetSize() (width, height int) {
	return s.payload.targetWidth, s.payload.targetHeight
}

// FinalSize returns the intrinsic size reported to hosts.
func (s *State) FinalSize() (width, height int) {
	return s.finalWidth, s.finalHeight
}

// FrameTransformation returns the current transformation, never nil.
func (s *State) FrameTransformation() frames.Transformation {
	if s.transformation == nil {
		return frames.Identity{}
	}
	return s.transformation
}

// Shares reports whether s and other use the same immutable payload.
func (s *State) Shares(other *State) bool {
	return other != nil && s.payload == other.payload
}

// Refs returns the number of live drawables using s.
func (s *State) Refs() int { return s.refs }

func (s *State) decoder() gifdecoder.Decoder {
	if s.payload.newDecoder != nil {
		return s.payload.newDecoder(s.payload.buffers)
	}
	return gifdecoder.New(s.payload.buffers)
}

func (s *State) producer(cfg frames.ManagerConfig) frames.Producer {
	if s.payload.newProducer != nil {
		return s.payload.newProducer(cfg)
	}
	return frames.NewManager(cfg)
}
