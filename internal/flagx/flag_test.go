package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.toml", "-x", "junk"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.toml"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.toml", "-other=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.toml"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-v", "-c", "conf.toml"},
			allowed: []string{"-v", "-c"},
			want:    []string{"-v", "-c", "conf.toml"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: []string{},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FilterArgs(%v, %v) = %v, want %v", tc.args, tc.allowed, got, tc.want)
			}
		})
	}
}
