package settings

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func testStorage(t *testing.T) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	storage, err := gdata.Open(gdata.Config{
		AppName: "kariesar_test",
	})
	if err != nil {
		t.Skipf("cannot open gdata storage: %v", err)
	}
	return storage
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.WindowWidth != 960 || s.WindowHeight != 640 {
		t.Errorf("default window = %dx%d, want 960x640", s.WindowWidth, s.WindowHeight)
	}
	if s.ShowDebug {
		t.Error("ShowDebug: got true, want false")
	}
	if !s.Captions {
		t.Error("Captions: got false, want true")
	}
}

func TestNilStorageStaysInMemory(t *testing.T) {
	m := NewManager(nil, nil)

	m.Settings().ShowDebug = true
	if err := m.Save(); err != nil {
		t.Fatalf("Save with nil storage: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load with nil storage: %v", err)
	}
	if !m.Settings().ShowDebug {
		t.Error("in-memory settings lost after Load")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	storage := testStorage(t)

	m := NewManager(storage, nil)
	m.Settings().WindowWidth = 1280
	m.Settings().WindowHeight = 720
	m.Settings().ShowDebug = true
	m.Settings().Captions = false
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewManager(storage, nil)
	got := reloaded.Settings()
	if got.WindowWidth != 1280 || got.WindowHeight != 720 {
		t.Errorf("reloaded window = %dx%d, want 1280x720", got.WindowWidth, got.WindowHeight)
	}
	if !got.ShowDebug {
		t.Error("reloaded ShowDebug: got false, want true")
	}
	if got.Captions {
		t.Error("reloaded Captions: got true, want false")
	}
}

func TestInvalidStoredSizeKeepsDefaults(t *testing.T) {
	storage := testStorage(t)

	if err := storage.SaveObjectProp(settingsObject, settingsProperty, []byte("windowWidth: -5\nwindowHeight: 0\n")); err != nil {
		t.Fatalf("seed bad settings: %v", err)
	}

	m := NewManager(storage, nil)
	got := m.Settings()
	if got.WindowWidth != 960 || got.WindowHeight != 640 {
		t.Errorf("settings after bad load = %dx%d, want defaults 960x640", got.WindowWidth, got.WindowHeight)
	}
}
