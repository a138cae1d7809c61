package keystore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileKeystoreSetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a token
	if err := ks.Set("main", "MTA2OTM1.test.token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Get it back
	token, err := ks.Get("main")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if token != "MTA2OTM1.test.token" {
		t.Errorf("Get() = %q, want MTA2OTM1.test.token", token)
	}
}

func TestFileKeystoreGetNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	_, err = ks.Get("nonexistent")
	if err == nil {
		t.Fatal("Get() should return error for nonexistent token")
	}

	if _, ok := err.(*ErrTokenNotFound); !ok {
		t.Errorf("Get() error type = %T, want *ErrTokenNotFound", err)
	}
}

func TestFileKeystoreDelete(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a token
	if err := ks.Set("staging", "staging-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Delete it
	if err := ks.Delete("staging"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Verify it's gone
	_, err = ks.Get("staging")
	if _, ok := err.(*ErrTokenNotFound); !ok {
		t.Error("Get() should return ErrTokenNotFound after Delete()")
	}
}

func TestFileKeystoreDeleteNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	err = ks.Delete("nonexistent")
	if err == nil {
		t.Fatal("Delete() should return error for nonexistent token")
	}

	if _, ok := err.(*ErrTokenNotFound); !ok {
		t.Errorf("Delete() error type = %T, want *ErrTokenNotFound", err)
	}
}

func TestFileKeystoreList(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// List empty keystore
	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty keystore returned %d items", len(names))
	}

	// Add some tokens
	if err := ks.Set("main", "token1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ks.Set("dev", "token2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ks.Set("staging", "token3"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// List should return sorted names
	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(names) != 3 {
		t.Fatalf("List() returned %d items, want 3", len(names))
	}

	// Should be sorted
	expected := []string{"dev", "main", "staging"}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("List()[%d] = %q, want %q", i, name, expected[i])
		}
	}
}

func TestFileKeystoreOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a token
	if err := ks.Set("main", "original-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Overwrite it
	if err := ks.Set("main", "rotated-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Should get the new value
	token, err := ks.Get("main")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if token != "rotated-token" {
		t.Errorf("Get() = %q, want rotated-token", token)
	}
}

func TestFileKeystorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	// Create first keystore and set a token
	ks1, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	if err := ks1.Set("main", "persistent-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Create new keystore instance pointing to same file
	ks2, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Should be able to read the token
	token, err := ks2.Get("main")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if token != "persistent-token" {
		t.Errorf("Get() = %q, want persistent-token", token)
	}
}

func TestFileKeystoreWithKey(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks1, err := NewFileKeystoreWithKey(path, []byte("master-key"))
	if err != nil {
		t.Fatalf("NewFileKeystoreWithKey() error = %v", err)
	}

	if err := ks1.Set("main", "secret-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Same key can read it back
	ks2, err := NewFileKeystoreWithKey(path, []byte("master-key"))
	if err != nil {
		t.Fatalf("NewFileKeystoreWithKey() error = %v", err)
	}
	token, err := ks2.Get("main")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if token != "secret-token" {
		t.Errorf("Get() = %q, want secret-token", token)
	}

	// Wrong key cannot decrypt
	ks3, err := NewFileKeystoreWithKey(path, []byte("wrong-key"))
	if err != nil {
		t.Fatalf("NewFileKeystoreWithKey() error = %v", err)
	}
	if _, err := ks3.Get("main"); err == nil {
		t.Error("Get() with wrong master key should fail")
	}

	// Empty key is rejected
	if _, err := NewFileKeystoreWithKey(path, nil); err == nil {
		t.Error("NewFileKeystoreWithKey() should reject empty key")
	}
}

func TestFileKeystoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permissions not supported on Windows")
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a token to create the file
	if err := ks.Set("test", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Check file permissions
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	// Should be 0600 (user read/write only)
	mode := info.Mode().Perm()
	if mode != 0600 {
		t.Errorf("File permissions = %o, want 0600", mode)
	}
}

func TestFileKeystoreEncrypted(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a token with recognizable content
	secretToken := "MTA2-this-should-be-encrypted"
	if err := ks.Set("main", secretToken); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Read raw file contents
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// File should not contain plaintext token
	if string(contents) == secretToken {
		t.Error("File contains plaintext token - encryption failed")
	}

	// File should start with the magic header, not JSON
	if len(contents) < 4 || string(contents[:4]) != "CCRD" {
		t.Error("File missing keystore magic header")
	}
}

func TestFileKeystoreRejectsForeignFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.enc")

	if err := os.WriteFile(path, []byte(`{"main":"plaintext"}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	if _, err := ks.Get("main"); err == nil {
		t.Error("Get() should fail on a file without the keystore header")
	}
}

func TestFileKeystoreCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subdir", "deep", "tokens.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a token - should create directories
	if err := ks.Set("test", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(path); err != nil {
		t.Errorf("File not created: %v", err)
	}
}

func TestDefaultKeystorePath(t *testing.T) {
	path := DefaultKeystorePath()

	if path == "" {
		t.Error("DefaultKeystorePath() returned empty string")
	}

	// Should end with tokens.enc
	if filepath.Base(path) != "tokens.enc" {
		t.Errorf("DefaultKeystorePath() = %q, should end with tokens.enc", path)
	}

	// Should contain .concord directory
	dir := filepath.Dir(path)
	if filepath.Base(dir) != ".concord" {
		t.Errorf("DefaultKeystorePath() = %q, should be in .concord directory", path)
	}
}

func TestErrTokenNotFoundError(t *testing.T) {
	err := &ErrTokenNotFound{Name: "main"}
	msg := err.Error()

	if msg != "token not found: main" {
		t.Errorf("Error() = %q, want 'token not found: main'", msg)
	}
}
