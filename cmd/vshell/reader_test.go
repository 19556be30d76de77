package main

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLineReader(t *testing.T) {
	reader := newLineReader(strings.NewReader("mkdir a\nexit\nYes\n"))

	line, err := reader.ReadLine("$ ")
	if err != nil || line != "mkdir a" {
		t.Fatalf("Expected 'mkdir a', got %q (%v)", line, err)
	}
	if _, err := reader.ReadLine("$ "); err != nil {
		t.Fatalf("Failed to read second line: %v", err)
	}

	confirmed, err := reader.Confirm("Leave?")
	if err != nil || !confirmed {
		t.Errorf("Expected 'Yes' to confirm, got %v (%v)", confirmed, err)
	}

	if _, err := reader.ReadLine("$ "); !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF at end of input, got %v", err)
	}
	if confirmed, err := reader.Confirm("Leave?"); confirmed || !errors.Is(err, io.EOF) {
		t.Errorf("Expected unconfirmed EOF, got %v (%v)", confirmed, err)
	}
}

func TestIsYes(t *testing.T) {
	for answer, expected := range map[string]bool{
		"y":     true,
		" YES ": true,
		"n":     false,
		"":      false,
		"yep":   false,
	} {
		if got := isYes(answer); got != expected {
			t.Errorf("isYes(%q) = %v, expected %v", answer, got, expected)
		}
	}
}
