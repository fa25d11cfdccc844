package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectLoopLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"loops"},
			want: []string{"loops"},
		},
		{
			name: "direct loop id first token",
			in:   []string{"loops", "loop-abc123"},
			want: []string{"loops", "show", "loop-abc123"},
		},
		{
			name: "direct loop id after value flag",
			in:   []string{"loops", "--dir", "./tmp-loops", "loop-abc123"},
			want: []string{"loops", "--dir", "./tmp-loops", "show", "loop-abc123"},
		},
		{
			name: "direct loop id after equals flag",
			in:   []string{"loops", "--format=yaml", "loop-abc123"},
			want: []string{"loops", "--format=yaml", "show", "loop-abc123"},
		},
		{
			name: "direct loop id after bool flag",
			in:   []string{"loops", "--pretty", "loop-abc123", "--md"},
			want: []string{"loops", "--pretty", "show", "loop-abc123", "--md"},
		},
		{
			name: "direct loop id after double dash",
			in:   []string{"loops", "--log-level", "debug", "--", "loop-abc123"},
			want: []string{"loops", "--log-level", "debug", "--", "show", "loop-abc123"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"loops", "loop-"},
			want: []string{"loops", "loop-"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"loops", "export", "loop-abc123"},
			want: []string{"loops", "export", "loop-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"loops", "wat"},
			want: []string{"loops", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectLoopLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectLoopLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
