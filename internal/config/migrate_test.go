package config

import "testing"

func TestCodeBlockStyleMigration(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want float32
	}{
		{
			name: "legacy border true",
			yaml: "styles:\n  code_block:\n    border: true\n",
			want: 1.0,
		},
		{
			name: "legacy border false",
			yaml: "styles:\n  code_block:\n    border: false\n",
			want: 0.0,
		},
		{
			name: "new border_width only",
			yaml: "styles:\n  code_block:\n    border_width: 2.5\n",
			want: 2.5,
		},
		{
			name: "both present: border_width wins",
			yaml: "styles:\n  code_block:\n    border: true\n    border_width: 2.5\n",
			want: 2.5,
		},
		{
			name: "neither present",
			yaml: "styles:\n  code_block:\n    font:\n      family: Consolas\n",
			want: 0.5, // preserved from Default()
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, _, err := Load([]byte(test.yaml))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Styles.CodeBlock.BorderWidth != test.want {
				t.Errorf("BorderWidth = %v, want %v", cfg.Styles.CodeBlock.BorderWidth, test.want)
			}
		})
	}
}
