package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/palette/pkg/database"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOp  string
		wantArg int
		wantErr bool
	}{
		{"up", []string{"up"}, "up", 0, false},
		{"down", []string{"down"}, "down", 0, false},
		{"version", []string{"version"}, "version", 0, false},
		{"steps forward", []string{"steps", "2"}, "steps", 2, false},
		{"steps back", []string{"steps", "-1"}, "steps", -1, false},
		{"force zero", []string{"force", "0"}, "force", 0, false},
		{"empty", nil, "", 0, true},
		{"unknown", []string{"sideways"}, "", 0, true},
		{"up with argument", []string{"up", "3"}, "", 0, true},
		{"steps missing count", []string{"steps"}, "", 0, true},
		{"steps zero", []string{"steps", "0"}, "", 0, true},
		{"force not a number", []string{"force", "latest"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, arg, err := parseOperation(tt.args)
			if tt.wantErr {
				if !errors.Is(err, errUsage) {
					t.Fatalf("error = %v, want errUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if op != tt.wantOp || arg != tt.wantArg {
				t.Errorf("got (%s, %d), want (%s, %d)", op, arg, tt.wantOp, tt.wantArg)
			}
		})
	}
}

func TestSchemaHintIsValidInvocation(t *testing.T) {
	fields := strings.Fields(database.MigrateHint)
	if len(fields) < 3 || fields[0] != "run:" || fields[1] != "migrate" {
		t.Fatalf("hint %q does not name the migrate command", database.MigrateHint)
	}

	op, _, err := parseOperation(fields[2:])
	if err != nil {
		t.Fatalf("hint %q is not accepted by migrate: %v", database.MigrateHint, err)
	}
	if op != "up" {
		t.Errorf("hint runs %q, want up", op)
	}
}

func TestRunRejectsUsageBeforeConnecting(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-dsn", "postgres://unused", "sideways"}, &out)
	if !errors.Is(err, errUsage) {
		t.Fatalf("error = %v, want errUsage", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestResolveDSNPrefersFlagThenEnv(t *testing.T) {
	t.Setenv(envDSN, "postgres://env")

	got, err := resolveDSN("postgres://flag")
	if err != nil || got != "postgres://flag" {
		t.Errorf("flag: got (%q, %v)", got, err)
	}

	got, err = resolveDSN("")
	if err != nil || got != "postgres://env" {
		t.Errorf("env: got (%q, %v)", got, err)
	}
}
