package store

import (
	"errors"
	"os"
	"testing"

	"github.com/timok/sample-librarian/internal/util"
)

func TestCollectionLifecycle(t *testing.T) {
	tmpFile := "test-collections.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	c := &Collection{Name: "Kicks 2026", Description: "current kick picks"}
	if err := store.CreateCollection(c); err != nil {
		t.Fatalf("failed to create collection: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected create to assign an id")
	}

	var fileIDs []int64
	for _, path := range []string{"/lib/a.wav", "/lib/b.wav"} {
		f := testFile(path)
		if err := store.InsertFile(f); err != nil {
			t.Fatalf("failed to insert %s: %v", path, err)
		}
		fileIDs = append(fileIDs, f.ID)
	}

	if err := store.AddFilesToCollection(c.ID, fileIDs); err != nil {
		t.Fatalf("failed to add files: %v", err)
	}
	// Re-adding the same files is idempotent
	if err := store.AddFilesToCollection(c.ID, fileIDs); err != nil {
		t.Errorf("expected re-add to succeed, got %v", err)
	}

	collections, err := store.ListCollections()
	if err != nil {
		t.Fatalf("failed to list collections: %v", err)
	}
	if len(collections) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(collections))
	}
	if collections[0].FileCount != 2 {
		t.Errorf("expected member count 2, got %d", collections[0].FileCount)
	}

	files, err := store.CollectionFiles(c.ID)
	if err != nil {
		t.Fatalf("failed to list collection files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 member files, got %d", len(files))
	}

	if err := store.RemoveFilesFromCollection(c.ID, fileIDs[:1]); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	files, err = store.CollectionFiles(c.ID)
	if err != nil {
		t.Fatalf("failed to list collection files: %v", err)
	}
	if len(files) != 1 || files[0].ID != fileIDs[1] {
		t.Errorf("expected only the second file to remain")
	}
}

func TestDeleteCollectionKeepsFiles(t *testing.T) {
	tmpFile := "test-collections-delete.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	c := &Collection{Name: "Temp"}
	if err := store.CreateCollection(c); err != nil {
		t.Fatalf("failed to create collection: %v", err)
	}

	f := testFile("/lib/kick.wav")
	if err := store.InsertFile(f); err != nil {
		t.Fatalf("failed to insert file: %v", err)
	}
	if err := store.AddFilesToCollection(c.ID, []int64{f.ID}); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}

	if err := store.DeleteCollection(c.ID); err != nil {
		t.Fatalf("failed to delete collection: %v", err)
	}

	if err := store.DeleteCollection(c.ID); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	// Member files survive the collection
	if _, err := store.GetFileByID(f.ID); err != nil {
		t.Errorf("expected file to survive collection deletion: %v", err)
	}
}

func TestDeleteFileLeavesCollection(t *testing.T) {
	tmpFile := "test-collections-member.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	c := &Collection{Name: "Keep"}
	if err := store.CreateCollection(c); err != nil {
		t.Fatalf("failed to create collection: %v", err)
	}

	f := testFile("/lib/kick.wav")
	if err := store.InsertFile(f); err != nil {
		t.Fatalf("failed to insert file: %v", err)
	}
	if err := store.AddFilesToCollection(c.ID, []int64{f.ID}); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}

	if err := store.DeleteFile(f.ID); err != nil {
		t.Fatalf("failed to delete file: %v", err)
	}

	// The collection stays, just without the member
	files, err := store.CollectionFiles(c.ID)
	if err != nil {
		t.Fatalf("failed to list collection files: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected membership to cascade with the file, got %d", len(files))
	}

	collections, err := store.ListCollections()
	if err != nil {
		t.Fatalf("failed to list collections: %v", err)
	}
	if len(collections) != 1 {
		t.Errorf("expected collection to survive, got %d", len(collections))
	}
}
