// Package gifdrawable plays animated GIFs inside a host surface that
// repaints on demand.
//
// A [State] holds the decoded payload and the configuration shared by every
// placement of the same animation. Each placement is a [Drawable] with its own
// current frame and running flags:
//
//	d, err := gifdrawable.New(gifdrawable.StateConfig{Data: data})
//	d.SetCallback(host)
//	d.SetVisible(true)
//	d.Start()
//
//	// in the host's paint pass
//	d.Draw(canvas)
//
//	// when the placement goes away
//	d.Recycle()
//
// Further placements share the payload through [Drawable.Clone] or
// [State.NewDrawable]; [CopyState] and [Drawable.Mutate] give a placement its
// own frame transformation and intrinsic size.
package gifdrawable
