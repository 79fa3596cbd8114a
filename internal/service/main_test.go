package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/internal/store/drivers/sqlite"
	"github.com/astecastudio/portfolio-api/pkg/cryptox"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "portfolio-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if err := st.ApplyMigrations(); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return st
}
