package store

import (
	"errors"
	"os"
	"testing"

	"github.com/timok/sample-librarian/internal/util"
)

func TestCreateAndListTags(t *testing.T) {
	tmpFile := "test-tags-list.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	for _, name := range []string{"Uptempo", "Kick", "Hardstyle"} {
		if err := store.CreateTag(&Tag{Name: name, Category: CategoryCustom}); err != nil {
			t.Fatalf("failed to create tag %s: %v", name, err)
		}
	}

	tags, err := store.ListTags()
	if err != nil {
		t.Fatalf("failed to list tags: %v", err)
	}

	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(tags))
	}

	// Alphabetical order
	want := []string{"Hardstyle", "Kick", "Uptempo"}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("expected tag %d to be %s, got %s", i, name, tags[i].Name)
		}
	}
}

func TestCreateTagDuplicateName(t *testing.T) {
	tmpFile := "test-tags-dup.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.CreateTag(&Tag{Name: "Kick", Category: CategoryInstrument}); err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	err = store.CreateTag(&Tag{Name: "Kick", Category: CategoryGenre})
	if !errors.Is(err, util.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestEnsureTagIdempotent(t *testing.T) {
	tmpFile := "test-tags-ensure.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	first, err := store.EnsureTag("Hardstyle", CategoryGenre)
	if err != nil {
		t.Fatalf("failed to ensure tag: %v", err)
	}

	second, err := store.EnsureTag("Hardstyle", CategoryGenre)
	if err != nil {
		t.Fatalf("failed to ensure existing tag: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same tag, got ids %d and %d", first.ID, second.ID)
	}

	tags, err := store.ListTags()
	if err != nil {
		t.Fatalf("failed to list tags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("expected 1 tag, got %d", len(tags))
	}
}

func TestAddAndRemoveFileTag(t *testing.T) {
	tmpFile := "test-tags-assoc.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	f := testFile("/lib/kick.wav")
	if err := store.InsertFile(f); err != nil {
		t.Fatalf("failed to insert file: %v", err)
	}
	tag, err := store.EnsureTag("Kick", CategoryInstrument)
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	if err := store.AddFileTag(f.ID, tag.ID); err != nil {
		t.Fatalf("failed to tag file: %v", err)
	}
	// Repeating the association is fine
	if err := store.AddFileTag(f.ID, tag.ID); err != nil {
		t.Errorf("expected repeated association to succeed, got %v", err)
	}

	tags, err := store.TagsForFile(f.ID)
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "Kick" {
		t.Fatalf("expected exactly the Kick tag, got %d tags", len(tags))
	}

	if err := store.RemoveFileTag(f.ID, tag.ID); err != nil {
		t.Fatalf("failed to untag file: %v", err)
	}

	tags, err = store.TagsForFile(f.ID)
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags after removal, got %d", len(tags))
	}
}

func TestBulkTagFiles(t *testing.T) {
	tmpFile := "test-tags-bulk.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	var fileIDs []int64
	for _, path := range []string{"/lib/a.wav", "/lib/b.wav", "/lib/c.wav"} {
		f := testFile(path)
		if err := store.InsertFile(f); err != nil {
			t.Fatalf("failed to insert %s: %v", path, err)
		}
		fileIDs = append(fileIDs, f.ID)
	}

	genre, err := store.EnsureTag("Hardcore", CategoryGenre)
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	instr, err := store.EnsureTag("Kick", CategoryInstrument)
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	// Pre-existing association must not break the bulk insert
	if err := store.AddFileTag(fileIDs[0], genre.ID); err != nil {
		t.Fatalf("failed to pre-tag file: %v", err)
	}

	if err := store.BulkTagFiles(fileIDs, []int64{genre.ID, instr.ID}); err != nil {
		t.Fatalf("bulk tagging failed: %v", err)
	}

	for _, id := range fileIDs {
		tags, err := store.TagsForFile(id)
		if err != nil {
			t.Fatalf("failed to get tags for %d: %v", id, err)
		}
		if len(tags) != 2 {
			t.Errorf("expected file %d to carry 2 tags, got %d", id, len(tags))
		}
	}
}

func TestDeleteTagCascades(t *testing.T) {
	tmpFile := "test-tags-delete.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	f := testFile("/lib/kick.wav")
	if err := store.InsertFile(f); err != nil {
		t.Fatalf("failed to insert file: %v", err)
	}
	tag, err := store.EnsureTag("Kick", CategoryInstrument)
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	if err := store.AddFileTag(f.ID, tag.ID); err != nil {
		t.Fatalf("failed to tag file: %v", err)
	}

	if err := store.DeleteTag(tag.ID); err != nil {
		t.Fatalf("failed to delete tag: %v", err)
	}

	tags, err := store.TagsForFile(f.ID)
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected associations to cascade with the tag, got %d", len(tags))
	}

	// The file is untouched
	if _, err := store.GetFileByID(f.ID); err != nil {
		t.Errorf("expected file to survive tag deletion: %v", err)
	}
}

func TestSeedTags(t *testing.T) {
	tmpFile := "test-tags-seed.db"
	defer os.Remove(tmpFile)
	defer os.Remove(tmpFile + "-shm")
	defer os.Remove(tmpFile + "-wal")

	store, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.SeedTags(DefaultSeedTags); err != nil {
		t.Fatalf("failed to seed tags: %v", err)
	}
	// Seeding twice must not duplicate anything
	if err := store.SeedTags(DefaultSeedTags); err != nil {
		t.Fatalf("failed to re-seed tags: %v", err)
	}

	tags, err := store.ListTags()
	if err != nil {
		t.Fatalf("failed to list tags: %v", err)
	}
	if len(tags) != len(DefaultSeedTags) {
		t.Errorf("expected %d seeded tags, got %d", len(DefaultSeedTags), len(tags))
	}
}
