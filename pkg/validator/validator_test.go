package validator

import (
	"errors"
	"testing"
)

type sample struct {
	ChatID int64  `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=10"`
	Mode   string `validate:"omitempty,oneof=HTML Markdown"`
}

func TestValidateStruct(t *testing.T) {
	if err := ValidateStruct(sample{ChatID: 1, Text: "hi"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := ValidateStruct(sample{Text: "this text is too long", Mode: "plain"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errs := TranslateError(err)
	if errs["chat_id"] != "is required" {
		t.Fatalf("expected chat_id error keyed by json name, got %v", errs)
	}
	if errs["text"] != "must be at most 10" {
		t.Fatalf("unexpected text error: %v", errs)
	}
	if errs["Mode"] != "must be one of HTML, Markdown" {
		t.Fatalf("expected untagged field under its Go name, got %v", errs)
	}
}

func TestDescribe(t *testing.T) {
	err := ValidateStruct(sample{Text: "this text is too long"})
	want := "chat_id is required; text must be at most 10"
	if got := Describe(err); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := Describe(errors.New("boom")); got != "boom" {
		t.Fatalf("expected plain error text, got %q", got)
	}
}

func TestTranslateErrorOtherErrors(t *testing.T) {
	if len(TranslateError(nil)) != 0 {
		t.Fatal("expected empty map for nil")
	}
	errs := TranslateError(errors.New("boom"))
	if errs["error"] != "boom" {
		t.Fatalf("unexpected translation: %v", errs)
	}
}
