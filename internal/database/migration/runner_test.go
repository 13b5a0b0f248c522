package migration

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortsAndChecksums(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"V1__first.sql":  {Data: []byte("CREATE TABLE a (id INT);")},
		"notes.txt":      {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("migrations not sorted: %+v", migs)
	}
	if migs[0].Name != "first" || migs[1].Name != "second" {
		t.Fatalf("unexpected names: %+v", migs)
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("unexpected checksums: %+v", migs)
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestLoadMigrations_EmptyFile(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql": {Data: []byte("   ")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected empty migration error")
	}
}

func TestEmbedded_ContainsSchema(t *testing.T) {
	r, err := Embedded()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	migs, err := loadMigrations(r.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) < 3 {
		t.Fatalf("expected at least 3 embedded migrations, got %d", len(migs))
	}
	for i, m := range migs {
		if m.Version != int64(i+1) {
			t.Fatalf("expected contiguous versions, got %+v", migs)
		}
	}
}
