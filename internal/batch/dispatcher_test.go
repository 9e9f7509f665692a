package batch

import (
	"log/slog"
	"reflect"
	"testing"

	"github.com/swiftdeps/modscan/internal/loader"
	"github.com/swiftdeps/modscan/internal/testutil"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	primary := &SubInstance{}
	newHost := func(extra []string) loader.Host {
		return testutil.NewFixtureHost()
	}
	return NewDispatcher(primary, newHost, "ctx", slog.Default(), nil, nil)
}

func TestDispatcherResolveEmptyArgumentsUsesPrimary(t *testing.T) {
	d := newTestDispatcher(t)
	if got := d.Resolve(""); got != d.primary {
		t.Errorf("Resolve(\"\") = %v, want the primary instance", got)
	}
}

func TestDispatcherResolveMemoizesByLiteralArgumentsString(t *testing.T) {
	// scenario 6 (spec.md §8): two entries with identical arguments string
	// but different module names share one sub-instance.
	d := newTestDispatcher(t)
	a := d.Resolve("-Xcc -I/usr/include")
	b := d.Resolve("-Xcc -I/usr/include")
	if a != b {
		t.Error("Resolve() created a second sub-instance for an identical arguments string")
	}
	if len(d.subByArgs) != 1 {
		t.Errorf("subByArgs has %d entries, want 1", len(d.subByArgs))
	}
}

func TestDispatcherResolveDistinctArgumentsGetDistinctSubInstances(t *testing.T) {
	d := newTestDispatcher(t)
	a := d.Resolve("-Xcc -I/usr/include")
	b := d.Resolve("-Xcc -I/other")
	if a == b {
		t.Error("Resolve() reused a sub-instance across distinct arguments strings")
	}
}

func TestDispatcherResolveRefreshesExtraClangArgsOnReuse(t *testing.T) {
	d := newTestDispatcher(t)
	first := d.Resolve("-Xcc -I/usr/include")
	wantFirst := []string{"-I/usr/include"}
	if !reflect.DeepEqual(first.ExtraClangArgs, wantFirst) {
		t.Fatalf("ExtraClangArgs after first use = %v, want %v", first.ExtraClangArgs, wantFirst)
	}

	second := d.Resolve("-Xcc -I/usr/include")
	if second != first {
		t.Fatal("expected the same sub-instance on reuse")
	}
	wantSecond := []string{"-I/usr/include"}
	if !reflect.DeepEqual(second.ExtraClangArgs, wantSecond) {
		t.Errorf("ExtraClangArgs after reuse = %v, want %v (refreshed, not accumulated)", second.ExtraClangArgs, wantSecond)
	}
}

func TestDispatcherSubInstancesReturnsAllCreated(t *testing.T) {
	d := newTestDispatcher(t)
	d.Resolve("-Xcc -I/a")
	d.Resolve("-Xcc -I/b")
	d.Resolve("-Xcc -I/a")

	instances := d.SubInstances()
	if len(instances) != 2 {
		t.Errorf("SubInstances() returned %d, want 2 (deduped by arguments string)", len(instances))
	}
}
