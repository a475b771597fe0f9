package minecraft

import "testing"

func TestPathFromName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "generic",
			input: "org.ow2.asm:asm-tree:9.2",
			want:  "org/ow2/asm/asm-tree/9.2/asm-tree-9.2.jar",
		},
		{
			name:  "with classifier",
			input: "net.minecraftforge:forge:1.19.4-45.1.0:universal",
			want:  "net/minecraftforge/forge/1.19.4-45.1.0/forge-1.19.4-45.1.0-universal.jar",
		},
		{
			name:    "missing version",
			input:   "org.ow2.asm:asm-tree",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PathFromName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PathFromName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PathFromName() = %q, want %q", got, tt.want)
			}
		})
	}
}
