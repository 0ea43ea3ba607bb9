package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "a.wav")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	hash, err := HashFile(path)
	if err != nil {
		t.Fatalf("failed to hash file: %v", err)
	}

	// sha256 of "hello world"
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if hash != want {
		t.Errorf("expected %s, got %s", want, hash)
	}
}

func TestHashFileContentDetermined(t *testing.T) {
	dir := t.TempDir()

	// Same bytes under different names hash identically
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "sub")
	if err := os.Mkdir(b, 0755); err != nil {
		t.Fatalf("failed to make dir: %v", err)
	}
	b = filepath.Join(b, "b.wav")

	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("same content"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	hashA, err := HashFile(a)
	if err != nil {
		t.Fatalf("failed to hash a: %v", err)
	}
	hashB, err := HashFile(b)
	if err != nil {
		t.Fatalf("failed to hash b: %v", err)
	}

	if hashA != hashB {
		t.Errorf("expected identical hashes, got %s and %s", hashA, hashB)
	}

	// One changed byte changes the digest
	if err := os.WriteFile(b, []byte("same content!"), 0644); err != nil {
		t.Fatalf("failed to rewrite b: %v", err)
	}
	hashB2, err := HashFile(b)
	if err != nil {
		t.Fatalf("failed to rehash b: %v", err)
	}
	if hashB2 == hashB {
		t.Error("expected changed content to change the hash")
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile("/no/such/file.wav"); err == nil {
		t.Error("expected error for missing file")
	}
}
