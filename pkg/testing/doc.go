// Package testing provides test doubles shared by the playback packages.
//
// [FakeClock] replaces the animation clock so frame delays can be stepped
// deterministically:
//
//	clk := drifttest.NewFakeClock()
//	prev := animation.SetClock(clk)
//	defer animation.SetClock(prev)
//
//	clk.Advance(100 * time.Millisecond)
//
// [PlaybackTester] installs a fake clock and a [platform.Looper] as the UI
// thread in one step, then drives playback frame by frame:
//
//	tester := drifttest.NewPlaybackTesterWithT(t)
//	d.Start()
//	tester.Pump()
//	if err := tester.Step(100 * time.Millisecond); err != nil {
//		t.Fatal(err)
//	}
//
// [Snapshot] records painted frames as checksums and pixel samples and
// compares them against golden files. Set DRIFTGIF_UPDATE_SNAPSHOTS=1 to
// rewrite the files.
package testing
