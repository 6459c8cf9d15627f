package main

import (
	"reflect"
	"testing"
)

func TestRewritePartyShorthandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"siralim-planner"},
			want: []string{"siralim-planner"},
		},
		{
			name: "shorthand alone",
			in:   []string{"siralim-planner", "@main"},
			want: []string{"siralim-planner", "--party", "main"},
		},
		{
			name: "shorthand before subcommand",
			in:   []string{"siralim-planner", "@main", "party", "show"},
			want: []string{"siralim-planner", "--party", "main", "party", "show"},
		},
		{
			name: "shorthand after value flag",
			in:   []string{"siralim-planner", "--data-dir", "./tmp", "@main"},
			want: []string{"siralim-planner", "--data-dir", "./tmp", "--party", "main"},
		},
		{
			name: "shorthand after equals flag",
			in:   []string{"siralim-planner", "--format=yaml", "@main", "party", "show"},
			want: []string{"siralim-planner", "--format=yaml", "--party", "main", "party", "show"},
		},
		{
			name: "shorthand after bool flag",
			in:   []string{"siralim-planner", "--pretty", "@main"},
			want: []string{"siralim-planner", "--pretty", "--party", "main"},
		},
		{
			name: "shorthand after double dash",
			in:   []string{"siralim-planner", "--catalog", "./data", "--", "@main"},
			want: []string{"siralim-planner", "--catalog", "./data", "--party", "main", "--"},
		},
		{
			name: "bare at sign not rewritten",
			in:   []string{"siralim-planner", "@"},
			want: []string{"siralim-planner", "@"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"siralim-planner", "party", "show", "@main"},
			want: []string{"siralim-planner", "party", "show", "@main"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewritePartyShorthandArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
