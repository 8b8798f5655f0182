package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatal(err)
	}

	url, err := ls.SaveFile("test.png", []byte("payload"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "/uploads/test.png" {
		t.Errorf("url = %q, want /uploads/test.png", url)
	}

	data, err := os.ReadFile(filepath.Join(ls.UploadDir, "test.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("stored data = %q", data)
	}

	if err := ls.DeleteFile(url); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(ls.UploadDir, "test.png")); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}

	// deleting again is a no-op
	if err := ls.DeleteFile(url); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestNewLocalStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "uploads")
	if _, err := NewLocalStorage(dir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("upload dir not created: %v", err)
	}
}
