package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

func TestRead_FileExists(t *testing.T) {
	dir := t.TempDir()

	original := New(models.SampleDishes()[:2])
	if err := Write(dir, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got == nil {
		t.Fatal("Read returned nil")
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
	if got.RecipeCount() != 2 {
		t.Errorf("RecipeCount = %d, want 2", got.RecipeCount())
	}
	if got.Recipes[0].ID != "sample-carbonara" {
		t.Errorf("Recipes[0].ID = %q, want %q", got.Recipes[0].ID, "sample-carbonara")
	}
	if len(got.Recipes[0].Ingredients) != len(original.Recipes[0].Ingredients) {
		t.Errorf("ingredients = %d, want %d", len(got.Recipes[0].Ingredients), len(original.Recipes[0].Ingredients))
	}
}

func TestRead_FileNotExists(t *testing.T) {
	dir := t.TempDir()

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != nil {
		t.Fatalf("Read returned non-nil for missing file: %+v", got)
	}
}

func TestRead_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)

	if err := os.WriteFile(p, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(dir)
	if err == nil {
		t.Fatal("Read should return error for invalid JSON")
	}
}

func TestRead_FutureVersion(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)

	if err := os.WriteFile(p, []byte(`{"version": 99, "recipes": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(dir); err == nil {
		t.Fatal("Read should reject newer versions")
	}
}

func TestRead_EmptyRecipes(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)

	if err := os.WriteFile(p, []byte(`{"version": 1}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Recipes == nil {
		t.Fatal("Recipes should be initialized to an empty slice, not nil")
	}
}

func TestWrite_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	if err := Write(dir, New(models.SampleDishes()[:1])); err != nil {
		t.Fatalf("Write: %v", err)
	}

	p := Path(dir)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		t.Fatalf("File not created at %s", p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if content[len(content)-1] != '\n' {
		t.Error("File should end with newline")
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}

func TestWrite_Idempotent(t *testing.T) {
	dir := t.TempDir()
	box := New(models.SampleDishes())

	if err := Write(dir, box); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	data1, _ := os.ReadFile(Path(dir))

	if err := Write(dir, box); err != nil {
		t.Fatalf("Write 2: %v", err)
	}
	data2, _ := os.ReadFile(Path(dir))

	if string(data1) != string(data2) {
		t.Error("Two writes produced different output (not idempotent)")
	}
}

func TestWrite_SetsDefaultVersion(t *testing.T) {
	dir := t.TempDir()

	if err := Write(dir, &RecipeBox{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, _ := Read(dir)
	if got.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", got.Version, CurrentVersion)
	}
}

func TestPath(t *testing.T) {
	got := Path("/home/user/recipes")
	want := filepath.Join("/home/user/recipes", FileName)
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestNew(t *testing.T) {
	box := New(nil)
	if box.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", box.Version, CurrentVersion)
	}
	if box.Recipes == nil {
		t.Error("Recipes should not be nil")
	}
	if box.RecipeCount() != 0 {
		t.Error("Recipes should be empty")
	}
}

func TestSortedTitles(t *testing.T) {
	box := New([]models.Dish{{Title: "Ramen"}, {Title: "Apple Pie"}, {Title: "Falafel"}})
	got := box.SortedTitles()
	want := []string{"Apple Pie", "Falafel", "Ramen"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedTitles[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
