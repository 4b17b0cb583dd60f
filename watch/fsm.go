// Package watch follows package installs and removals in a solution's package
// repository and tells the caller when a package's paths should be rewritten.
//
// A Machine tracks one install sequence at a time:
//
//	Idle -> Installing -> AwaitingReferenceAdded -> Done
//
// and answers an uninstall immediately. A Source turns file system notifications into
// machine events, and a Loop feeds them to the machine on a single goroutine.
package watch

import (
	"strings"

	"github.com/willibrandon/gohintpath/mspath"
	"github.com/willibrandon/gohintpath/pathfix"
)

// State is the state of a Machine.
type State int

const (
	// Idle means no install sequence is in flight.
	Idle State = iota
	// Installing means package files are being extracted.
	Installing
	// AwaitingReferenceAdded means the files are in place and the project has not
	// yet been updated to reference them.
	AwaitingReferenceAdded
	// Done means the last install sequence completed and was answered with a fix.
	Done
	// Uninstalling means the last event removed a package and was answered with a revert.
	Uninstalling
)

func (s State) String() string {
	switch s {
	case Installing:
		return "Installing"
	case AwaitingReferenceAdded:
		return "AwaitingReferenceAdded"
	case Done:
		return "Done"
	case Uninstalling:
		return "Uninstalling"
	default:
		return "Idle"
	}
}

// EventKind identifies a package lifecycle event.
type EventKind int

const (
	PackageInstalling EventKind = iota
	PackageInstalled
	PackageReferenceAdded
	PackageUninstalling
)

func (k EventKind) String() string {
	switch k {
	case PackageInstalling:
		return "PackageInstalling"
	case PackageInstalled:
		return "PackageInstalled"
	case PackageReferenceAdded:
		return "PackageReferenceAdded"
	case PackageUninstalling:
		return "PackageUninstalling"
	default:
		return "Unknown"
	}
}

// Event is a package lifecycle event. PackageReferenceAdded may carry no package
// when the source cannot tell which package the reference belongs to.
type Event struct {
	Kind    EventKind
	Package pathfix.PackageRecord
}

// Action asks the caller to rewrite the paths of Packages in Direction.
type Action struct {
	Direction pathfix.Direction
	Packages  []pathfix.PackageRecord
}

// Machine is the install/uninstall state machine of one solution. It is not safe
// for concurrent use; a Loop owns it.
type Machine struct {
	solutionDir string
	state       State
	pending     []pathfix.PackageRecord
}

// NewMachine creates an idle machine for the solution in solutionDir.
func NewMachine(solutionDir string) *Machine {
	return &Machine{solutionDir: solutionDir}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Pending returns the packages of the install sequence in flight.
func (m *Machine) Pending() []pathfix.PackageRecord {
	return append([]pathfix.PackageRecord(nil), m.pending...)
}

// Handle applies one event and returns the rewrite it triggers, if any. Events
// for packages installed outside the solution directory are ignored.
func (m *Machine) Handle(ev Event) (Action, bool) {
	switch ev.Kind {
	case PackageInstalling:
		if !m.inSolution(ev.Package) {
			return Action{}, false
		}
		if m.state != Installing && m.state != AwaitingReferenceAdded {
			m.pending = nil
		}
		m.addPending(ev.Package)
		m.state = Installing

	case PackageInstalled:
		if m.state == Installing && m.isPending(ev.Package) {
			m.state = AwaitingReferenceAdded
		}

	case PackageReferenceAdded:
		if m.state != AwaitingReferenceAdded {
			return Action{}, false
		}
		if ev.Package.ID != "" && !m.isPending(ev.Package) {
			return Action{}, false
		}
		action := Action{Direction: pathfix.Forward, Packages: m.pending}
		m.pending = nil
		m.state = Done
		return action, true

	case PackageUninstalling:
		if !m.inSolution(ev.Package) {
			return Action{}, false
		}
		m.pending = nil
		m.state = Uninstalling
		return Action{Direction: pathfix.Backward, Packages: []pathfix.PackageRecord{ev.Package}}, true
	}

	return Action{}, false
}

func (m *Machine) inSolution(pkg pathfix.PackageRecord) bool {
	if pkg.InstallPath == "" {
		return false
	}
	_, ok := mspath.TrimPrefix(pkg.InstallPath, m.solutionDir)
	return ok
}

func (m *Machine) isPending(pkg pathfix.PackageRecord) bool {
	for _, p := range m.pending {
		if strings.EqualFold(p.ID, pkg.ID) {
			return true
		}
	}
	return false
}

func (m *Machine) addPending(pkg pathfix.PackageRecord) {
	for i, p := range m.pending {
		if strings.EqualFold(p.ID, pkg.ID) {
			m.pending[i] = pkg
			return
		}
	}
	m.pending = append(m.pending, pkg)
}
