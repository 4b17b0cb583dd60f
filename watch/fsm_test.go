package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willibrandon/gohintpath/pathfix"
)

var (
	foo     = pathfix.PackageRecord{ID: "Foo", InstallPath: `C:\Sln\packages\Foo.1.0`}
	bar     = pathfix.PackageRecord{ID: "Bar", InstallPath: `C:\Sln\packages\Bar.2.0`}
	outside = pathfix.PackageRecord{ID: "Shared", InstallPath: `C:\Shared\packages\Shared.1.0`}
)

func TestMachine_InstallSequence(t *testing.T) {
	m := NewMachine(`C:\Sln`)
	assert.Equal(t, Idle, m.State())

	_, ok := m.Handle(Event{Kind: PackageInstalling, Package: foo})
	assert.False(t, ok)
	assert.Equal(t, Installing, m.State())

	_, ok = m.Handle(Event{Kind: PackageInstalled, Package: foo})
	assert.False(t, ok)
	assert.Equal(t, AwaitingReferenceAdded, m.State())

	action, ok := m.Handle(Event{Kind: PackageReferenceAdded, Package: foo})
	require.True(t, ok)
	assert.Equal(t, Done, m.State())
	assert.Equal(t, pathfix.Forward, action.Direction)
	assert.Equal(t, []pathfix.PackageRecord{foo}, action.Packages)
	assert.Empty(t, m.Pending())

	_, ok = m.Handle(Event{Kind: PackageReferenceAdded})
	assert.False(t, ok, "a second reference notification does not fix again")
}

func TestMachine_ReferenceBeforeInstallIsIgnored(t *testing.T) {
	m := NewMachine(`C:\Sln`)

	_, ok := m.Handle(Event{Kind: PackageReferenceAdded, Package: foo})
	assert.False(t, ok)
	assert.Equal(t, Idle, m.State())

	m.Handle(Event{Kind: PackageInstalling, Package: foo})
	_, ok = m.Handle(Event{Kind: PackageReferenceAdded, Package: foo})
	assert.False(t, ok, "files are not in place yet")
	assert.Equal(t, Installing, m.State())
}

func TestMachine_InstalledForAnotherPackage(t *testing.T) {
	m := NewMachine(`C:\Sln`)
	m.Handle(Event{Kind: PackageInstalling, Package: foo})

	m.Handle(Event{Kind: PackageInstalled, Package: bar})
	assert.Equal(t, Installing, m.State())
}

func TestMachine_DependenciesJoinTheSequence(t *testing.T) {
	m := NewMachine(`C:\Sln`)

	m.Handle(Event{Kind: PackageInstalling, Package: foo})
	m.Handle(Event{Kind: PackageInstalled, Package: foo})
	m.Handle(Event{Kind: PackageInstalling, Package: bar})
	assert.Equal(t, Installing, m.State())
	m.Handle(Event{Kind: PackageInstalled, Package: bar})

	action, ok := m.Handle(Event{Kind: PackageReferenceAdded})
	require.True(t, ok)
	assert.Equal(t, []pathfix.PackageRecord{foo, bar}, action.Packages)
}

func TestMachine_ReferenceForUnknownPackage(t *testing.T) {
	m := NewMachine(`C:\Sln`)
	m.Handle(Event{Kind: PackageInstalling, Package: foo})
	m.Handle(Event{Kind: PackageInstalled, Package: foo})

	_, ok := m.Handle(Event{Kind: PackageReferenceAdded, Package: bar})
	assert.False(t, ok)
	assert.Equal(t, AwaitingReferenceAdded, m.State())
}

func TestMachine_Uninstall(t *testing.T) {
	m := NewMachine(`C:\Sln`)

	action, ok := m.Handle(Event{Kind: PackageUninstalling, Package: foo})
	require.True(t, ok)
	assert.Equal(t, Uninstalling, m.State())
	assert.Equal(t, pathfix.Backward, action.Direction)
	assert.Equal(t, []pathfix.PackageRecord{foo}, action.Packages)

	m.Handle(Event{Kind: PackageInstalling, Package: bar})
	assert.Equal(t, Installing, m.State())
	assert.Equal(t, []pathfix.PackageRecord{bar}, m.Pending())
}

func TestMachine_NewSequenceAfterDone(t *testing.T) {
	m := NewMachine(`C:\Sln`)
	m.Handle(Event{Kind: PackageInstalling, Package: foo})
	m.Handle(Event{Kind: PackageInstalled, Package: foo})
	m.Handle(Event{Kind: PackageReferenceAdded})

	m.Handle(Event{Kind: PackageInstalling, Package: bar})
	assert.Equal(t, []pathfix.PackageRecord{bar}, m.Pending())
}

func TestMachine_OutsideSolutionIsIgnored(t *testing.T) {
	m := NewMachine(`C:\Sln`)

	_, ok := m.Handle(Event{Kind: PackageInstalling, Package: outside})
	assert.False(t, ok)
	assert.Equal(t, Idle, m.State())

	_, ok = m.Handle(Event{Kind: PackageUninstalling, Package: outside})
	assert.False(t, ok)
	assert.Equal(t, Idle, m.State())

	_, ok = m.Handle(Event{Kind: PackageInstalling, Package: pathfix.PackageRecord{ID: "NoPath"}})
	assert.False(t, ok)
	assert.Equal(t, Idle, m.State())
}

func TestStateAndEventNames(t *testing.T) {
	assert.Equal(t, "AwaitingReferenceAdded", AwaitingReferenceAdded.String())
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "PackageUninstalling", PackageUninstalling.String())
}
