package store

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/rosetta/pkg/reactive"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "ui.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, path
}

func TestBoolRoundTrip(t *testing.T) {
	s, _ := openTemp(t)
	defer s.Close()

	if _, err := s.Bool("window/Stats"); !stderrors.Is(err, ErrNoFlag) {
		t.Errorf("Bool(missing) error = %v, want ErrNoFlag", err)
	}
	if err := s.PutBool("window/Stats", true); err != nil {
		t.Fatal(err)
	}
	if err := s.PutBool("fold/Inventory", false); err != nil {
		t.Fatal(err)
	}
	if v, err := s.Bool("window/Stats"); err != nil || !v {
		t.Errorf("Bool = %v, %v; want true", v, err)
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"fold/Inventory", "window/Stats"}, keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if err := s.Delete("fold/Inventory"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Bool("fold/Inventory"); !stderrors.Is(err, ErrNoFlag) {
		t.Errorf("deleted flag still present: %v", err)
	}
}

func TestBindFlagPersistsAcrossSessions(t *testing.T) {
	s, path := openTemp(t)
	open := reactive.NewProperty(true)
	unbind := s.BindFlag("window/Stats", open)
	if _, err := s.Bool("window/Stats"); !stderrors.Is(err, ErrNoFlag) {
		t.Error("binding alone should not store the default")
	}
	open.Set(false)
	unbind()
	open.Set(true)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	restored := reactive.NewProperty(true)
	s2.BindFlag("window/Stats", restored)
	if restored.Value() {
		t.Error("flag should be restored as false")
	}
}
