package store

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/timok/sample-librarian/internal/util"
)

func TestWatchedFolderLifecycle(t *testing.T) {
	tmpFile := "test-folders.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	folder, err := store.AddWatchedFolder("/music/samples")
	if err != nil {
		t.Fatalf("failed to add folder: %v", err)
	}
	if folder.ID == 0 {
		t.Fatal("expected add to assign an id")
	}
	if !folder.Active {
		t.Error("expected new folder to be active")
	}
	if folder.LastScanned != nil {
		t.Error("expected new folder to have no scan stamp")
	}

	// The same path cannot be registered twice
	if _, err := store.AddWatchedFolder("/music/samples"); !errors.Is(err, util.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	now := time.Now().UnixMilli()
	if err := store.MarkFolderScanned(folder.ID, now); err != nil {
		t.Fatalf("failed to stamp folder: %v", err)
	}

	folders, err := store.ListWatchedFolders()
	if err != nil {
		t.Fatalf("failed to list folders: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(folders))
	}
	if folders[0].LastScanned == nil || *folders[0].LastScanned != now {
		t.Errorf("expected scan stamp %d, got %v", now, folders[0].LastScanned)
	}

	if err := store.RemoveWatchedFolder(folder.ID); err != nil {
		t.Fatalf("failed to remove folder: %v", err)
	}
	if err := store.RemoveWatchedFolder(folder.ID); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}

	folders, err = store.ListWatchedFolders()
	if err != nil {
		t.Fatalf("failed to list folders: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("expected no folders, got %d", len(folders))
	}
}
