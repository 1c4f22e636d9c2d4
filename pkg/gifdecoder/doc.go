// Package gifdecoder exposes an animated GIF payload as a sequence of fully
// composited frames.
//
// The container is parsed once into a [Header] that may be shared by many
// decoders. Each [Decoder] keeps its own cursor and compositing canvas, so
// several playback instances can walk the same payload independently.
//
//	header, err := gifdecoder.ParseHeader(data)
//	dec := gifdecoder.New(gifdecoder.NewPoolProvider())
//	dec.Bind("cat.gif", header, data)
//	dec.Advance()
//	frame, err := dec.NextFrame()
package gifdecoder
