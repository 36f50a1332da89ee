package classify

import (
	"testing"

	"github.com/scylladb/go-set/strset"
	"github.com/stretchr/testify/assert"
)

func TestIsIgnored(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		fullScan bool
		want     bool
	}{
		{"proc entry default mode", "/proc/1/status", false, true},
		{"proc entry full scan", "/proc/1/status", true, true},
		{"proc itself", "/proc", true, true},
		{"sys", "/sys/kernel", false, true},
		{"dev", "/dev/null", true, true},
		{"run", "/run/user/1000", true, true},
		{"efi", "/efi/EFI", true, true},
		{"usr", "/usr/lib/node_modules", true, true},
		{"prefix is not a component", "/usrlocal/app", true, false},
		{"projects default mode", "/home/user/Projects/app/node_modules", false, true},
		{"projects full scan", "/home/user/Projects/app/node_modules", true, false},
		{"opt component", "/opt/tool/node_modules", false, true},
		{"vscode component", "/home/user/.vscode/extensions/x", false, true},
		{"component match is exact", "/home/user/projects/app", false, false},
		{"component substring", "/home/user/options/app", false, false},
		{"plain home path", "/home/user/app/node_modules", false, false},
		{"root", "/", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.fullScan)
			assert.Equal(t, tt.want, c.IsIgnored(tt.path))
		})
	}
}

func TestIsIgnoredCustomNames(t *testing.T) {
	c := Classifier{ExcludedNames: []string{"vendor"}}

	assert.True(t, c.IsIgnored("/srv/vendor/node_modules"))
	assert.False(t, c.IsIgnored("/home/user/Projects/app"))
	assert.True(t, c.IsIgnored("/proc/self"), "system prefixes apply regardless of names")

	c.FullScan = true
	assert.False(t, c.IsIgnored("/srv/vendor/node_modules"))
}

func TestIsIgnoredCustomPrefixes(t *testing.T) {
	c := Classifier{SystemPrefixes: []string{"/mnt/slow"}}

	assert.True(t, c.IsIgnored("/mnt/slow/disk"))
	assert.False(t, c.IsIgnored("/proc/1"))
}

func TestIsInsideKnown(t *testing.T) {
	known := strset.New("/a/node_modules", "/b/c/node_modules")

	tests := []struct {
		path string
		want bool
	}{
		{"/a/node_modules/pkg", true},
		{"/a/node_modules/pkg/lib/index.js", true},
		{"/a/node_modules", false},
		{"/a/node_modules_old/pkg", false},
		{"/b/c/node_modules/x/node_modules", true},
		{"/b/c", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInsideKnown(tt.path, known))
		})
	}
}

func TestIsInsideKnownChecksFilesystemRoot(t *testing.T) {
	known := strset.New("/")

	assert.True(t, IsInsideKnown("/anything", known))
	assert.False(t, IsInsideKnown("/", known))
}
