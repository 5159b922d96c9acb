package backend

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/macro"
)

type stubDevice struct{ w, h int }

func (*stubDevice) Save()                        {}
func (*stubDevice) Restore()                     {}
func (*stubDevice) Transform(macro.Transform)    {}
func (*stubDevice) SetAlphaMode(macro.AlphaMode) {}
func (*stubDevice) SetTexture(image.Image)       {}
func (*stubDevice) DrawQuads([]macro.Vertex)     {}

func stubFactory(w, h int) (macro.Device, error) {
	return &stubDevice{w: w, h: h}, nil
}

func TestRegistryRegisterAndNew(t *testing.T) {
	Register("test-stub", stubFactory)
	defer Unregister("test-stub")

	if !IsRegistered("test-stub") {
		t.Fatal("IsRegistered(test-stub) = false")
	}
	d, err := New("test-stub", 3, 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sd, ok := d.(*stubDevice)
	if !ok || sd.w != 3 || sd.h != 4 {
		t.Errorf("New() = %#v, want 3x4 stub", d)
	}
}

func TestRegistryNewUnregistered(t *testing.T) {
	_, err := New("nonexistent", 1, 1)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(nonexistent) error = %v, want ErrUnknownBackend", err)
	}
}

func TestRegistryFactoryError(t *testing.T) {
	boom := errors.New("boom")
	Register("test-failing", func(int, int) (macro.Device, error) { return nil, boom })
	defer Unregister("test-failing")

	if _, err := New("test-failing", 1, 1); !errors.Is(err, boom) {
		t.Errorf("New() error = %v, want wrapped factory error", err)
	}
}

func TestRegistryAvailableSorted(t *testing.T) {
	Register("test-b", stubFactory)
	Register("test-a", stubFactory)
	defer Unregister("test-a")
	defer Unregister("test-b")

	names := Available()
	if !slices.IsSorted(names) {
		t.Errorf("Available() = %v, not sorted", names)
	}
	if !slices.Contains(names, "test-a") || !slices.Contains(names, "test-b") {
		t.Errorf("Available() = %v, missing test backends", names)
	}
}

func TestRegistryPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil factory", func() { Register("test-nil", nil) }},
		{"duplicate", func() {
			Register("test-dup", stubFactory)
			defer Unregister("test-dup")
			Register("test-dup", stubFactory)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("test-gone", stubFactory)
	Unregister("test-gone")
	Unregister("test-gone")
	if IsRegistered("test-gone") {
		t.Error("backend still registered after Unregister")
	}
}

func TestDefaultPrefersPriority(t *testing.T) {
	saved := factories
	defer func() { factories = saved }()
	factories = map[string]Factory{}

	if _, err := Default(1, 1); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Default() on empty registry error = %v, want ErrNoBackend", err)
	}

	var got string
	named := func(name string) Factory {
		return func(w, h int) (macro.Device, error) {
			got = name
			return &stubDevice{w: w, h: h}, nil
		}
	}
	factories["aaa"] = named("aaa")
	factories["raster"] = named("raster")

	if _, err := Default(1, 1); err != nil {
		t.Fatal(err)
	}
	if got != "raster" {
		t.Errorf("Default() used %q, want raster", got)
	}

	delete(factories, "raster")
	if _, err := Default(1, 1); err != nil {
		t.Fatal(err)
	}
	if got != "aaa" {
		t.Errorf("Default() used %q, want aaa", got)
	}
}
