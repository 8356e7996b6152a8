package store

import (
    "path/filepath"
    "testing"

    "github.com/google/go-cmp/cmp"
)

func TestSnippetsRoundTrip(t *testing.T) {
    path := filepath.Join(t.TempDir(), "nested", "snippets.json")
    got, err := LoadSnippets(path)
    if err != nil {
        t.Fatalf("LoadSnippets missing file error: %v", err)
    }
    if len(got) != 0 {
        t.Fatalf("expected empty list, got %v", got)
    }
    if _, err := AddSnippet(path, Snippet{Value: " make test ", Description: "run tests"}); err != nil {
        t.Fatalf("AddSnippet error: %v", err)
    }
    existed, err := AddSnippet(path, Snippet{Value: "make test"})
    if err != nil {
        t.Fatalf("AddSnippet error: %v", err)
    }
    if !existed {
        t.Fatalf("second add should report existing value")
    }
    if _, err := AddSnippet(path, Snippet{Value: "docker ps"}); err != nil {
        t.Fatalf("AddSnippet error: %v", err)
    }
    got, err = LoadSnippets(path)
    if err != nil {
        t.Fatalf("LoadSnippets error: %v", err)
    }
    want := []Snippet{{Value: "docker ps"}, {Value: "make test", Description: "run tests"}}
    if diff := cmp.Diff(want, got); diff != "" {
        t.Fatalf("snippets mismatch (-want +got):\n%s", diff)
    }
}

func TestRemoveSnippets(t *testing.T) {
    path := filepath.Join(t.TempDir(), "snippets.json")
    if err := SaveSnippets(path, []Snippet{{Value: "a"}, {Value: "b"}}); err != nil {
        t.Fatalf("SaveSnippets error: %v", err)
    }
    removed, missing, err := RemoveSnippets(path, []string{"b", "c"})
    if err != nil {
        t.Fatalf("RemoveSnippets error: %v", err)
    }
    if diff := cmp.Diff([]string{"b"}, removed); diff != "" {
        t.Fatalf("removed (-want +got):\n%s", diff)
    }
    if diff := cmp.Diff([]string{"c"}, missing); diff != "" {
        t.Fatalf("missing (-want +got):\n%s", diff)
    }
    got, _ := LoadSnippets(path)
    if diff := cmp.Diff([]Snippet{{Value: "a"}}, got); diff != "" {
        t.Fatalf("left (-want +got):\n%s", diff)
    }
}
