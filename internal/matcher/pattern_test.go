package matcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRejectsBadPatterns(t *testing.T) {
	for _, raw := range []string{"", "/", "//", "*", "a*b*c", "**", "foo/bar", "/foo"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Compile(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPattern))
		})
	}
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    Reason
	}{
		// prefix wildcard
		{"readme*", "/a/node_modules/pkg/README.md", PrefixName},
		{"readme*", "/a/node_modules/pkg/Readme.txt", PrefixName},
		{"readme*", "/a/node_modules/pkg/my-readme.txt", NoMatch},
		{"readme*", "/a/node_modules/readme/my-readme.txt", PrefixSegment},

		// directory segment
		{"/test/", "/a/node_modules/pkg/test/file.js", DirectorySegment},
		{"/test/", "/a/node_modules/pkg/testing/file.js", NoMatch},
		{"/test/", "/a/node_modules/pkg/Test/file.js", NoMatch},
		{"/test/", "/a/node_modules/pkg/test", NoMatch},

		// exact
		{"license", "/a/node_modules/pkg/license", ExactName},
		{"license", "/a/node_modules/pkg/LICENSE", ExactName},
		{"license", "/a/node_modules/pkg/MIT.license", ExactExtension},
		{"license", "/a/node_modules/pkg/mylicense.txt", NoMatch},
		{"license", "/a/node_modules/license/index.js", ExactSegment},
		{"md", "/a/node_modules/pkg/CHANGES.MD", ExactExtension},
		{".npmignore", "/a/node_modules/pkg/.npmignore", ExactName},
		{"npmignore", "/a/node_modules/pkg/.npmignore", NoMatch},

		// mixed wildcard
		{"tsconfig*.json", "/a/node_modules/pkg/tsconfig.json", MixedName},
		{"tsconfig*.json", "/a/node_modules/pkg/tsconfig.build.json", MixedName},
		{"tsconfig*.json", "/a/node_modules/pkg/package.json", NoMatch},
		{"*.ts", "/a/node_modules/pkg/index.d.ts", MixedName},
		{"*.ts", "/a/node_modules/pkg/index.js", NoMatch},
		{"a*z", "/q/az/file", MixedSegment},
		{"a*z", "/zoo/abc", NoMatch},
		{"ab*ba", "/x/aba", NoMatch},
		{"a*z", "/zoo/node_modules/pkg/abz", MixedName},
		{"tsconfig*.json", "/srv/cfg.json.d/node_modules/pkg/tsconfig.base.json", MixedName},
		{"tsconfig*.json", "/srv/cfg.json.d/node_modules/pkg/index.js", NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			p := MustCompile(tt.pattern)
			got, ok := p.Match(tt.path)
			assert.Equal(t, tt.want, got, "reason %s", got)
			assert.Equal(t, tt.want != NoMatch, ok)
		})
	}
}

func TestPatternString(t *testing.T) {
	assert.Equal(t, "Readme*", MustCompile("Readme*").String())
	assert.Equal(t, "extension", ExactExtension.String())
	assert.Equal(t, "Reason(99)", Reason(99).String())
}

func TestExtension(t *testing.T) {
	tests := []struct {
		base string
		want string
		ok   bool
	}{
		{"index.js", "js", true},
		{"archive.tar.gz", "gz", true},
		{".eslintrc", "", false},
		{".eslintrc.json", "json", true},
		{"Makefile", "", false},
		{"trailing.", "", false},
	}
	for _, tt := range tests {
		got, ok := extension(tt.base)
		assert.Equal(t, tt.want, got, tt.base)
		assert.Equal(t, tt.ok, ok, tt.base)
	}
}

func TestNormalize(t *testing.T) {
	tg := normalize("/Home/User/node_modules/Pkg/README.md")

	assert.Equal(t, "/Home/User/node_modules/Pkg/README.md", tg.path)
	assert.Equal(t, "readme.md", tg.base)
	assert.Equal(t, []string{"home", "user", "node_modules", "pkg", "readme.md"}, tg.segments)
	assert.True(t, tg.hasSegment("pkg"))
	assert.False(t, tg.hasSegment("Pkg"))
}
