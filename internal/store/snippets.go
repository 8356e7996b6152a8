package store

import (
    "encoding/json"
    "errors"
    "os"
    "path/filepath"
    "sort"
    "strings"
)

// Snippet is a user-defined command offered as a completion candidate.
type Snippet struct {
    Value       string `json:"value"`
    Description string `json:"description,omitempty"`
}

// NormalizeSnippets trims values, drops empties, keeps the last description
// for duplicate values and sorts by value.
func NormalizeSnippets(in []Snippet) []Snippet {
    m := map[string]Snippet{}
    for _, s := range in {
        s.Value = strings.TrimSpace(s.Value)
        s.Description = strings.TrimSpace(s.Description)
        if s.Value == "" {
            continue
        }
        if prev, ok := m[s.Value]; ok && s.Description == "" {
            s.Description = prev.Description
        }
        m[s.Value] = s
    }
    out := make([]Snippet, 0, len(m))
    for _, s := range m {
        out = append(out, s)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
    return out
}

// LoadSnippets reads a JSON snippet array from path.
// Missing file yields an empty list without error. Output is normalized.
func LoadSnippets(path string) ([]Snippet, error) {
    b, err := os.ReadFile(path)
    if err != nil {
        if os.IsNotExist(err) {
            return []Snippet{}, nil
        }
        return nil, err
    }
    var arr []Snippet
    if err := json.Unmarshal(b, &arr); err != nil {
        return nil, err
    }
    return NormalizeSnippets(arr), nil
}

// SaveSnippets writes snippets to path, creating parent dirs.
func SaveSnippets(path string, list []Snippet) error {
    if strings.TrimSpace(path) == "" {
        return errors.New("empty path")
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return err
    }
    b, err := json.MarshalIndent(NormalizeSnippets(list), "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(path, b, 0o644)
}

// AddSnippet inserts or updates a snippet. existed reports whether the value
// was already present.
func AddSnippet(path string, s Snippet) (existed bool, err error) {
    cur, err := LoadSnippets(path)
    if err != nil {
        return false, err
    }
    v := strings.TrimSpace(s.Value)
    if v == "" {
        return false, errors.New("empty snippet")
    }
    for _, c := range cur {
        if c.Value == v {
            existed = true
        }
    }
    return existed, SaveSnippets(path, append(cur, s))
}

// RemoveSnippets deletes values and returns which were removed or missing.
func RemoveSnippets(path string, values []string) (removed []string, missing []string, err error) {
    cur, err := LoadSnippets(path)
    if err != nil {
        return nil, nil, err
    }
    drop := map[string]bool{}
    for _, v := range values {
        if v = strings.TrimSpace(v); v != "" {
            drop[v] = true
        }
    }
    next := cur[:0]
    for _, c := range cur {
        if drop[c.Value] {
            removed = append(removed, c.Value)
            delete(drop, c.Value)
            continue
        }
        next = append(next, c)
    }
    for v := range drop {
        missing = append(missing, v)
    }
    if err := SaveSnippets(path, next); err != nil {
        return nil, nil, err
    }
    sort.Strings(removed)
    sort.Strings(missing)
    return removed, missing, nil
}
