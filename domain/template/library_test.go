package template

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "main_menu.png"), 40, 30)
	writePNG(t, filepath.Join(dir, "training_button.png"), 20, 10)
	writeJPEG(t, filepath.Join(dir, "race_screen.jpg"), 25, 25)

	// Non-image files and subdirectories must be ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0755); err != nil {
		t.Fatal(err)
	}

	lib, errs := Load(dir)
	if len(errs) != 0 {
		t.Fatalf("Load() errors = %v, want none", errs)
	}

	want := []string{"main_menu", "race_screen", "training_button"}
	if got := lib.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	tpl, ok := lib.Get("main_menu")
	if !ok {
		t.Fatal("Get(main_menu) not found")
	}
	if tpl.Width != 40 || tpl.Height != 30 {
		t.Errorf("main_menu dimensions = %dx%d, want 40x30", tpl.Width, tpl.Height)
	}
}

func TestLoad_MissingDirCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")

	lib, errs := Load(dir)
	if len(errs) != 0 {
		t.Fatalf("Load() errors = %v, want none", errs)
	}
	if lib.Len() != 0 {
		t.Errorf("Len() = %d, want 0", lib.Len())
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("template directory was not created: %v", err)
	}
}

func TestLoad_UndecodableFileSkipped(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "corrupt.png"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	lib, errs := Load(dir)
	if len(errs) != 1 {
		t.Fatalf("Load() errors = %v, want exactly one decode error", errs)
	}
	if !lib.Has("good") {
		t.Error("good template should have been loaded")
	}
	if lib.Has("corrupt") {
		t.Error("corrupt template should have been skipped")
	}
}

func TestLibrary_GetAbsent(t *testing.T) {
	lib := NewLibrary()
	if _, ok := lib.Get("missing"); ok {
		t.Error("Get() on absent name should report not found")
	}
}
