package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRankDuplicateWeight(t *testing.T) {
	single := score("ls", "l")
	if single <= 0 {
		t.Fatalf("ls should match l, score %v", single)
	}
	got := rank([]Candidate{
		{Type: TypeRecommendation, Query: "l", Value: "ls"},
		{Type: TypeRecommendation, Query: "l", Value: "ls", Description: "list"},
	})
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}
	if got[0].score != 2*single {
		t.Fatalf("score = %v, want %v", got[0].score, 2*single)
	}
	if got[0].Type != TypeDefault || got[0].Description != "list" {
		t.Fatalf("merged candidate = %+v", got[0].Candidate)
	}
}

func TestRankEmptyQueryAlwaysShown(t *testing.T) {
	in := []Candidate{
		{Type: TypeRecommendation, Value: "git push --set-upstream origin main"},
		{Type: TypeRecommendation, Value: "commas free 4000"},
	}
	if diff := cmp.Diff(in, Rank(in)); diff != "" {
		t.Fatalf("empty-query candidates (-want +got):\n%s", diff)
	}
}

func TestRankDropsNoise(t *testing.T) {
	got := Rank([]Candidate{
		{Query: "zq", Value: "ls"},
		{Query: "gi", Value: "git"},
	})
	if len(got) != 1 || got[0].Value != "git" {
		t.Fatalf("got %+v", got)
	}
}

func TestRankOrdersByScore(t *testing.T) {
	got := Rank([]Candidate{
		{Query: "gs", Value: "gpg-connect-agent-status"},
		{Query: "gs", Value: "gs"},
	})
	if len(got) == 0 || got[0].Value != "gs" {
		t.Fatalf("exact match should rank first, got %+v", got)
	}
}

func TestRankIsIdempotent(t *testing.T) {
	in := []Candidate{
		{Query: "ma", Value: "make"},
		{Query: "ma", Value: "man"},
		{Query: "ma", Value: "mkdir"},
		{Query: "", Value: "npm run build"},
		{Query: "ma", Value: "make"},
	}
	orig := append([]Candidate(nil), in...)
	once := Rank(in)
	twice := Rank(in)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second run changed order (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	if len(once) != 3 || once[0].Value != "make" {
		t.Fatalf("ranked = %+v", once)
	}
}

func TestScoreEmptyValue(t *testing.T) {
	if s := Score("", "a"); s != 0 {
		t.Fatalf("empty value score = %v", s)
	}
}

func TestRankKeepsPrefixQueries(t *testing.T) {
	cases := []struct {
		value string
		query string
	}{
		{"kubectl", "k"},
		{"kubectl", "kube"},
		{"lsblk", "l"},
		{"lsblk", "ls"},
		{"docker", "do"},
		{"git checkout", "git"},
		{"git checkout", "git che"},
		{"git push --set-upstream origin main", "g"},
		{"git push --set-upstream origin main", "git push --set"},
	}
	for _, c := range cases {
		got := Rank([]Candidate{{Query: c.query, Value: c.value}})
		if len(got) != 1 {
			t.Fatalf("%q should survive query %q (score %v)", c.value, c.query, Score(c.value, c.query))
		}
	}
}

func TestScoreIsBoundedForLongValues(t *testing.T) {
	long := "git push --set-upstream origin main && npm run build -- --watch"
	self := Score(long, long)
	if self <= 0 || self > 10000 {
		t.Fatalf("self score = %v", self)
	}
	if s := Score("kubectl", "kube"); s <= Score("kubectl", "kl") {
		t.Fatalf("contiguous prefix should beat a scattered match: %v", s)
	}
}
