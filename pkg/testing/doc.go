// Package testing provides deterministic time and error capture for tests
// of reactive runtimes.
//
// # Frame Clocks
//
// ManualFrameClock satisfies scheduler.FrameClock without a goroutine.
// Requested callbacks run only when the test steps a frame:
//
//	clk := xdomtest.NewManualFrameClock()
//	sched := scheduler.New(tree, clk, scheduler.DefaultConfig())
//	sched.Start()
//	clk.Frame(16 * time.Millisecond)
//
// # Error Capture
//
// ErrorRecorder installs itself as the global error handler and keeps every
// report for assertions:
//
//	rec := xdomtest.RecordErrors(t)
//	// ...
//	require.Len(t, rec.Errors(), 1)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import xdomtest "github.com/go-drift/xdom/pkg/testing"
package testing
