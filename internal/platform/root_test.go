package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jotterhq/jotter/pkg/config"
)

func TestFindRoot(t *testing.T) {
	// Layout:
	//   base/
	//     vault/ (jotter.yaml)
	//       subdir/
	//         nested/
	//     empty/

	baseDir := t.TempDir()
	vaultDir := filepath.Join(baseDir, "vault")
	subDir := filepath.Join(vaultDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}

	// The catalog file is the root marker.
	if err := config.WriteDefault(filepath.Join(vaultDir, config.DefaultFile)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{
			name:      "Start at Root",
			startPath: vaultDir,
			wantRoot:  vaultDir,
			wantErr:   false,
		},
		{
			name:      "Start in Subdir",
			startPath: subDir,
			wantRoot:  vaultDir,
			wantErr:   false,
		},
		{
			name:      "Start Nested Deeply",
			startPath: nestedDir,
			wantRoot:  vaultDir,
			wantErr:   false,
		},
		{
			name:      "No Root Found",
			startPath: emptyDir,
			wantRoot:  "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			// Compare cleaned paths to avoid trailing slash issues
			if got != "" {
				if filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
					t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
				}
			}
		})
	}
}

func TestResolveVaultPathTrustsTempPaths(t *testing.T) {
	inTemp := filepath.Join(t.TempDir(), "vault")
	if got := ResolveVaultPath(inTemp, true); got != inTemp {
		t.Errorf("ResolveVaultPath(%q, true) = %q, want it untouched", inTemp, got)
	}
}

func TestResolveVaultPathRerootsOutsideTemp(t *testing.T) {
	got := ResolveVaultPath("./my-notes", true)
	want := filepath.Join(os.TempDir(), "jotter-dev", "my-notes")
	if got != want {
		t.Errorf("ResolveVaultPath = %q, want %q", got, want)
	}

	if got := ResolveVaultPath("", true); got != filepath.Join(os.TempDir(), "jotter-dev", "default") {
		t.Errorf("empty path resolved to %q", got)
	}
}
