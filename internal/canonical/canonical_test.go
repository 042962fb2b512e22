package canonical

import (
	"bytes"
	"testing"
)

func TestCanonicalize_KeyOrderIndependent(t *testing.T) {
	payloadA := map[string]any{
		"id":          "1752274500-task-t",
		"title":       "T",
		"status":      "draft",
		"priority":    "medium",
		"description": "abcdefghij",
		"tags":        []any{},
	}
	payloadB := map[string]any{
		"tags":        []any{},
		"description": "abcdefghij",
		"status":      "draft",
		"id":          "1752274500-task-t",
		"priority":    "medium",
		"title":       "T",
	}

	bytesA, err := Canonicalize(payloadA)
	if err != nil {
		t.Fatalf("canonicalize A: %v", err)
	}
	bytesB, err := Canonicalize(payloadB)
	if err != nil {
		t.Fatalf("canonicalize B: %v", err)
	}
	if !bytes.Equal(bytesA, bytesB) {
		t.Fatalf("canonical bytes differ:\nA=%s\nB=%s", bytesA, bytesB)
	}

	sumA, err := Checksum(payloadA)
	if err != nil {
		t.Fatalf("checksum A: %v", err)
	}
	sumB, err := Checksum(payloadB)
	if err != nil {
		t.Fatalf("checksum B: %v", err)
	}
	if sumA != sumB {
		t.Fatalf("checksums differ: %s vs %s", sumA, sumB)
	}
	if len(sumA) != 64 {
		t.Fatalf("checksum length = %d, want 64", len(sumA))
	}
}

func TestCanonicalize_ArrayOrderSignificant(t *testing.T) {
	a, _ := Canonicalize(map[string]any{"tags": []any{"a", "b"}})
	b, _ := Canonicalize(map[string]any{"tags": []any{"b", "a"}})
	if bytes.Equal(a, b) {
		t.Fatalf("array order should be significant, got equal bytes")
	}
}

func TestCanonicalize_NestedStruct(t *testing.T) {
	type inner struct {
		B int    `json:"b"`
		A string `json:"a"`
	}
	type outer struct {
		Z inner  `json:"z"`
		Y string `json:"y"`
	}

	b, err := Canonicalize(outer{Z: inner{B: 2, A: "x"}, Y: "hi"})
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	want := `{"y":"hi","z":{"a":"x","b":2}}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestCanonicalize_NoInsignificantWhitespace(t *testing.T) {
	b, err := Canonicalize(map[string]any{"a": 1, "b": []any{1, 2}})
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if bytes.ContainsAny(b, " \n\t") {
		t.Fatalf("canonical output contains whitespace: %s", b)
	}
}
