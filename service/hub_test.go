package service

import (
	"errors"
	"strings"
	"testing"
)

type fakeService struct {
	name     string
	deps     []string
	startErr error
	log      *[]string
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop "+f.name)
	return nil
}

func joined(log []string) string {
	return strings.Join(log, ",")
}

func TestHub_StartStopOrder(t *testing.T) {
	var log []string
	h := NewHub()
	for _, svc := range []*fakeService{
		{name: "network", deps: []string{"feed"}, log: &log},
		{name: "audio", log: &log},
		{name: "feed", log: &log},
	} {
		if err := h.Register(svc); err != nil {
			t.Fatalf("Register %s: %v", svc.name, err)
		}
	}

	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	h.StopAll()

	want := "start audio,start feed,start network,stop network,stop feed,stop audio"
	if got := joined(log); got != want {
		t.Errorf("Lifecycle = %s\nwant        %s", got, want)
	}
}

func TestHub_RollbackOnFailure(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "audio", log: &log})
	h.Register(&fakeService{name: "feed", log: &log})
	h.Register(&fakeService{name: "network", startErr: errors.New("address in use"), log: &log})

	err := h.StartAll()
	if err == nil || !strings.Contains(err.Error(), "address in use") {
		t.Fatalf("Expected wrapped start error, got %v", err)
	}

	want := "start audio,start feed,stop feed,stop audio"
	if got := joined(log); got != want {
		t.Errorf("Lifecycle = %s, want %s", got, want)
	}

	// Nothing is left to stop after a rollback
	h.StopAll()
	if got := joined(log); got != want {
		t.Errorf("StopAll after rollback stopped again: %s", got)
	}
}

func TestHub_RegistrationErrors(t *testing.T) {
	var log []string
	h := NewHub()
	if err := h.Register(&fakeService{name: "audio", log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(&fakeService{name: "audio", log: &log}); err == nil {
		t.Error("Expected duplicate registration error")
	}

	h.Register(&fakeService{name: "network", deps: []string{"missing"}, log: &log})
	if err := h.StartAll(); err == nil {
		t.Error("Expected unregistered dependency error")
	}
}

func TestHub_Cycle(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})

	if err := h.StartAll(); err == nil {
		t.Error("Expected cycle error")
	}
	if len(log) != 0 {
		t.Errorf("No service should start on a cycle, got %v", log)
	}
}

func TestMustGet(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "audio", log: &log})

	if svc := MustGet[*fakeService](h, "audio"); svc.name != "audio" {
		t.Errorf("MustGet returned %q", svc.name)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing service")
		}
	}()
	MustGet[*fakeService](h, "feed")
}
