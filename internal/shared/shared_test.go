package shared

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateID() returned invalid uuid %q: %v", id, err)
	}

	if GenerateID() == id {
		t.Error("consecutive ids should differ")
	}
}

func TestImageFiles(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile := func(name string, data []byte) string {
		t.Helper()
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		return path
	}

	t.Run("ValidateImageFile", func(t *testing.T) {
		png := writeFile("cover.png", []byte("fake png bytes"))
		if err := ValidateImageFile(png); err != nil {
			t.Errorf("png should validate: %v", err)
		}

		jpg := writeFile("cover.JPG", []byte("fake jpg bytes"))
		if err := ValidateImageFile(jpg); err != nil {
			t.Errorf("jpg should validate regardless of case: %v", err)
		}

		gif := writeFile("cover.gif", []byte("fake gif bytes"))
		if err := ValidateImageFile(gif); err == nil {
			t.Error("gif should be rejected")
		}

		if err := ValidateImageFile(filepath.Join(tmpDir, "missing.png")); err == nil {
			t.Error("missing file should be rejected")
		}
	})

	t.Run("ReadImageFile", func(t *testing.T) {
		content := []byte{0x89, 0x50, 0x4e, 0x47}
		path := writeFile("dune.png", content)

		name, encoded, err := ReadImageFile(path)
		if err != nil {
			t.Fatalf("ReadImageFile() failed: %v", err)
		}

		if name != "dune.png" {
			t.Errorf("expected base name dune.png, got %s", name)
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			t.Fatalf("content is not valid base64: %v", err)
		}
		if string(decoded) != string(content) {
			t.Error("decoded content doesn't match the file")
		}
	})
}
