package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/lumen/engine/assets/loaders"
)

const firstScene = `
name: first
objects:
  - name: quad
    geometry: quad
`

const secondScene = `
name: second
objects:
  - name: quad
    geometry: quad
  - name: cube
    geometry: cube
    translation: [0, 0, 3]
`

func TestLoadAsset(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("failed to create asset manager: %v", err)
	}
	defer am.Shutdown()

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(firstScene), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	resource, err := am.LoadAsset(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scene := resource.Data.(*loaders.Scene); scene.Name != "first" {
		t.Errorf("expected scene first, got %s", scene.Name)
	}

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("hello"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := am.LoadAsset(other, nil); !errors.Is(err, ErrUnknownAssetType) {
		t.Errorf("expected ErrUnknownAssetType, got %v", err)
	}
	if err := am.Watch(other); err == nil {
		t.Error("watching an asset that was never loaded is expected to fail")
	}
}

func TestWatchReloads(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("failed to create asset manager: %v", err)
	}
	defer am.Shutdown()

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(firstScene), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}
	if _, err := am.LoadAsset(path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := am.Watch(path); err != nil {
		t.Fatalf("failed to watch scene: %v", err)
	}

	if err := os.WriteFile(path, []byte(secondScene), 0644); err != nil {
		t.Fatalf("failed to rewrite scene: %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case resource := <-am.Reloads():
			scene := resource.Data.(*loaders.Scene)
			// Writes can be split in several events; wait for the complete file.
			if scene.Name == "second" && len(scene.Objects) == 2 {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for the scene to reload")
		}
	}
}

func TestShutdown(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("failed to create asset manager: %v", err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := am.Shutdown(); err != nil {
		t.Errorf("a second shutdown is expected to be a no-op, got %v", err)
	}
	if err := am.Watch("scene.yaml"); !errors.Is(err, ErrManagerClosed) {
		t.Errorf("expected ErrManagerClosed, got %v", err)
	}
}
