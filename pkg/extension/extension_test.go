// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
)

func newRoot() (*cobra.Command, Registrar) {
	root := &cobra.Command{Use: "root"}
	return root, NewRegistrar(root)
}

func TestRegistrar_RegisterCommand(t *testing.T) {
	root, reg := newRoot()

	reg.RegisterCommand(&cobra.Command{Use: "hello"})

	cmds := root.Commands()
	if len(cmds) != 1 {
		t.Fatalf("root has %d commands, want 1", len(cmds))
	}
	if cmds[0].Name() != "hello" {
		t.Errorf("command name = %q, want %q", cmds[0].Name(), "hello")
	}
}

func TestRegistrar_RegisterGroupNests(t *testing.T) {
	root, reg := newRoot()

	group := reg.RegisterGroup("ext2", "extension group")
	group.RegisterCommand(&cobra.Command{Use: "test"})

	groupCmd, _, err := root.Find([]string{"ext2"})
	if err != nil {
		t.Fatalf("Find(ext2) returned error: %v", err)
	}
	if groupCmd.Name() != "ext2" {
		t.Fatalf("group name = %q, want %q", groupCmd.Name(), "ext2")
	}

	sub, _, err := root.Find([]string{"ext2", "test"})
	if err != nil {
		t.Fatalf("Find(ext2 test) returned error: %v", err)
	}
	if sub.Name() != "test" {
		t.Errorf("nested command name = %q, want %q", sub.Name(), "test")
	}
}

func TestTable_ActivateRunsEntryOnce(t *testing.T) {
	table := NewTable()
	_, reg := newRoot()

	calls := 0
	table.Register("ext2", func(root Registrar) error {
		calls++
		root.RegisterCommand(&cobra.Command{Use: "ext2-test"})
		return nil
	})

	for i := 0; i < 3; i++ {
		if err := table.Activate("ext2", reg); err != nil {
			t.Fatalf("Activate() call %d returned error: %v", i+1, err)
		}
	}

	if calls != 1 {
		t.Errorf("entry ran %d times, want 1", calls)
	}
	if !table.Activated("ext2") {
		t.Error("Activated(ext2) = false, want true")
	}
}

func TestTable_ActivateOncePerProcessAcrossRoots(t *testing.T) {
	// Two groups scanning the same table must not re-run the entry; the
	// table is the process-wide import cache.
	table := NewTable()
	_, regA := newRoot()
	_, regB := newRoot()

	calls := 0
	table.Register("ext2", func(Registrar) error {
		calls++
		return nil
	})

	if err := table.Activate("ext2", regA); err != nil {
		t.Fatalf("Activate() first root: %v", err)
	}
	if err := table.Activate("ext2", regB); err != nil {
		t.Fatalf("Activate() second root: %v", err)
	}

	if calls != 1 {
		t.Errorf("entry ran %d times across two roots, want 1", calls)
	}
}

func TestTable_ActivateUnregisteredModule(t *testing.T) {
	table := NewTable()
	_, reg := newRoot()

	err := table.Activate("ghost", reg)
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("Activate(ghost) error = %v, want ErrNotRegistered", err)
	}
	if table.Activated("ghost") {
		t.Error("Activated(ghost) = true after failed activation")
	}
}

func TestTable_FailedEntryRetries(t *testing.T) {
	table := NewTable()
	_, reg := newRoot()

	boom := errors.New("boom")
	calls := 0
	table.Register("flaky", func(Registrar) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	})

	if err := table.Activate("flaky", reg); !errors.Is(err, boom) {
		t.Fatalf("first Activate() error = %v, want wrapped %v", err, boom)
	}
	if table.Activated("flaky") {
		t.Fatal("Activated(flaky) = true after failed entry")
	}

	if err := table.Activate("flaky", reg); err != nil {
		t.Fatalf("retry Activate() returned error: %v", err)
	}
	if !table.Activated("flaky") {
		t.Error("Activated(flaky) = false after successful retry")
	}
	if calls != 2 {
		t.Errorf("entry ran %d times, want 2", calls)
	}
}

func TestTable_Modules(t *testing.T) {
	table := NewTable()
	table.Register("zeta", func(Registrar) error { return nil })
	table.Register("alpha", func(Registrar) error { return nil })

	modules := table.Modules()
	if len(modules) != 2 || modules[0] != "alpha" || modules[1] != "zeta" {
		t.Errorf("Modules() = %v, want [alpha zeta]", modules)
	}
}

func TestTable_NestedActivation(t *testing.T) {
	// An entry may activate another module; the table must not deadlock.
	table := NewTable()
	_, reg := newRoot()

	table.Register("inner", func(Registrar) error { return nil })
	table.Register("outer", func(root Registrar) error {
		return table.Activate("inner", root)
	})

	if err := table.Activate("outer", reg); err != nil {
		t.Fatalf("Activate(outer) returned error: %v", err)
	}
	if !table.Activated("inner") {
		t.Error("Activated(inner) = false, want true")
	}
}
