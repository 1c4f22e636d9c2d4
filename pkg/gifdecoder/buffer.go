package gifdecoder

import (
	"image"
	"sync"
)

// BufferProvider hands out and takes back frame buffers.
//
// Buffers returned by Obtain have undefined contents. Release may be called
// with buffers of any size, including ones the provider did not allocate.
type BufferProvider interface {
	Obtain(width, height int) *image.RGBA
	Release(img *image.RGBA)
}

// PoolProvider recycles buffers through one sync.Pool per buffer size.
type PoolProvider struct {
	mu    sync.Mutex
	pools map[image.Point]*sync.Pool
}

// NewPoolProvider returns an empty pool provider.
func NewPoolProvider() *PoolProvider {
	return &PoolProvider{pools: make(map[image.Point]*sync.Pool)}
}

func (p *PoolProvider) pool(size image.Point) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl, ok := p.pools[size]
	if !ok {
		pl = &sync.Pool{New: func() any {
			return image.NewRGBA(image.Rectangle{Max: size})
		}}
		p.pools[size] = pl
	}
	return pl
}

// Obtain returns a buffer of the requested size.
func (p *PoolProvider) Obtain(width, height int) *image.RGBA {
	return p.pool(image.Pt(width, height)).Get().(*image.RGBA)
}

// Release returns img to the pool for its size.
func (p *PoolProvider) Release(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Min != (image.Point{}) {
		return
	}
	p.pool(b.Max).Put(img)
}

// AllocProvider allocates a new buffer on every call and drops releases.
type AllocProvider struct{}

// Obtain allocates a new buffer.
func (AllocProvider) Obtain(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Release is a no-op.
func (AllocProvider) Release(*image.RGBA) {}
