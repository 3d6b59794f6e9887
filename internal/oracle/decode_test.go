package oracle

import (
	"errors"
	"testing"
)

func TestDecodeJSON_Plain(t *testing.T) {
	var got []string
	if err := DecodeJSON(`["a", "b"]`, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("decoded %v", got)
	}
}

func TestDecodeJSON_FencedBlock(t *testing.T) {
	raw := "```json\n{\"claims\": [\"x\"]}\n```"

	var got struct {
		Claims []string `json:"claims"`
	}
	if err := DecodeJSON(raw, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Claims) != 1 || got.Claims[0] != "x" {
		t.Errorf("decoded %+v", got)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var got []string
	err := DecodeJSON("Sure! Here are the claims you asked for.", &got)
	if err == nil {
		t.Fatal("expected error for prose response")
	}
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestDecodeJSON_FenceWithoutLanguage(t *testing.T) {
	raw := "```\n[1, 2, 3]\n```\n"

	var got []int
	if err := DecodeJSON(raw, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("decoded %v", got)
	}
}
