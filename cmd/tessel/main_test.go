package main

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/tessel/internal/errors"
)

func TestReportError(t *testing.T) {
	errors.DisableColors()
	defer errors.EnableColors()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "coded error gets a report",
			err:  fmt.Errorf("load: %w", errors.New("T020").WithDetail("maxFps must not be negative")),
			want: []string{"ERROR T020: ", "maxFps must not be negative", "Hint: "},
		},
		{
			name: "plain error gets one line",
			err:  stderrors.New("boom"),
			want: []string{"Error:", "boom"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := console{&buf}
	c.success("wrote %s", "a.json")
	c.warn("careful")
	c.info("%d frames", 3)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	for i, want := range []string{"wrote a.json", "careful", "3 frames"} {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], want)
		}
	}
}
