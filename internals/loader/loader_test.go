package loader

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ModLoader
		wantErr bool
	}{
		{
			name:  "forge",
			input: "forge-47.2.0",
			want:  ModLoader{Name: Forge, Version: "47.2.0"},
		},
		{
			name:  "neoforge",
			input: "neoforge-20.4.237",
			want:  ModLoader{Name: NeoForge, Version: "20.4.237"},
		},
		{
			name:    "missing version",
			input:   "forge",
			wantErr: true,
		},
		{
			name:    "unknown loader",
			input:   "quilt-0.19.2",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseID() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestModLoaderID(t *testing.T) {
	m := ModLoader{Name: Forge, Version: "1.7.10-10.13.4.1614-1.7.10"}
	if got := m.ID(); got != "forge-1.7.10-10.13.4.1614-1.7.10" {
		t.Errorf("ID() = %q", got)
	}
	if got := m.CacheName(); got != "forge_1.7.10-10.13.4.1614-1.7.10.json" {
		t.Errorf("CacheName() = %q", got)
	}
}
