package interaction

import (
	"errors"
	"testing"
)

func TestPendingResolve(t *testing.T) {
	table := newPendingTable()

	ch, ok := table.register(1)
	if !ok {
		t.Fatal("register failed on fresh table")
	}
	if table.size() != 1 {
		t.Fatalf("size = %d, want 1", table.size())
	}

	if !table.resolve(1, outcome{values: []string{"ok"}}) {
		t.Fatal("resolve reported no entry")
	}
	out := <-ch
	if out.err != nil {
		t.Fatalf("unexpected error: %v", out.err)
	}
	if len(out.values) != 1 || out.values[0] != "ok" {
		t.Fatalf("values = %v, want [ok]", out.values)
	}
	if table.size() != 0 {
		t.Fatalf("size after resolve = %d, want 0", table.size())
	}
}

func TestPendingResolveUnknownID(t *testing.T) {
	table := newPendingTable()
	if table.resolve(42, outcome{}) {
		t.Fatal("resolve succeeded for unregistered id")
	}
}

func TestPendingResolveTwice(t *testing.T) {
	table := newPendingTable()
	table.register(7)

	if !table.resolve(7, outcome{values: []string{"first"}}) {
		t.Fatal("first resolve failed")
	}
	if table.resolve(7, outcome{values: []string{"second"}}) {
		t.Fatal("second resolve succeeded, entry should be gone")
	}
}

func TestPendingRemove(t *testing.T) {
	table := newPendingTable()
	ch, _ := table.register(3)
	table.remove(3)

	if table.resolve(3, outcome{values: []string{"late"}}) {
		t.Fatal("resolve succeeded after remove")
	}
	select {
	case out := <-ch:
		t.Fatalf("unexpected completion: %+v", out)
	default:
	}
}

func TestPendingDrain(t *testing.T) {
	table := newPendingTable()
	cause := errors.New("gone")

	var chans []<-chan outcome
	for id := uint64(1); id <= 5; id++ {
		ch, _ := table.register(id)
		chans = append(chans, ch)
	}

	table.drain(cause)

	for i, ch := range chans {
		out := <-ch
		if !errors.Is(out.err, cause) {
			t.Fatalf("entry %d: err = %v, want %v", i+1, out.err, cause)
		}
	}
	if table.size() != 0 {
		t.Fatalf("size after drain = %d, want 0", table.size())
	}

	if _, ok := table.register(99); ok {
		t.Fatal("register succeeded after drain")
	}
}
