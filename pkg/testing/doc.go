// Package testing mounts element trees on the headless backend for tests.
//
// # Quick Start
//
// Create a tester, mount a tree, and make assertions:
//
//	func TestSettings(t *testing.T) {
//	    tester := rosettatest.NewUITesterWithT(t)
//	    tester.Mount(ui.Column(ui.Field[int](&s, "Speed")))
//
//	    speed := tester.Widget(rosettatest.ByText("Speed"))
//	    speed.Edit(7)
//	    tester.Pump()
//
//	    if s.Speed != 7 {
//	        t.Errorf("Speed = %d, want 7", s.Speed)
//	    }
//	}
//
// # Time
//
// The tester installs a fake clock for code that reads host.Now, such as
// the find-object polling of dynamic elements:
//
//	tester.Clock().Advance(2 * time.Second)
//	tester.Pump()
//
// # Errors
//
// Reported errors are recorded instead of logged; see [UITester.Errors].
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import rosettatest "github.com/go-drift/rosetta/pkg/testing"
package testing
