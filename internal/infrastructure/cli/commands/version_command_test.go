package commands

import "testing"

func TestBuildString(t *testing.T) {
	tests := []struct {
		name   string
		ver    string
		commit string
		date   string
		want   string
	}{
		{
			name: "version only",
			ver:  "0.3.0",
			want: "0.3.0",
		},
		{
			name:   "commit without date",
			ver:    "0.3.0",
			commit: "a1b2c3d",
			want:   "0.3.0 (a1b2c3d)",
		},
		{
			name: "date without commit",
			ver:  "0.3.0",
			date: "2026-08-29",
			want: "0.3.0 (2026-08-29)",
		},
		{
			name:   "full build metadata",
			ver:    "0.3.0",
			commit: "a1b2c3d",
			date:   "2026-08-29",
			want:   "0.3.0 (a1b2c3d, 2026-08-29)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildString(tt.ver, tt.commit, tt.date); got != tt.want {
				t.Errorf("buildString() = %q, want %q", got, tt.want)
			}
		})
	}
}
