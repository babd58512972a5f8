package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestMergeKeepsDefaultsForOmittedKeys(t *testing.T) {
	s := Resolve(Overrides{GraphInColor: ptr("blue"), HoverFontSize: ptr(30.0)})

	assert.Equal(t, "blue", s.GraphInColor)
	assert.Equal(t, 30.0, s.HoverFontSize)
	assert.Equal(t, "orange", s.FocusColor)
	assert.Equal(t, 16.0, s.FontSize)
}

func TestMergeIgnoresBlankAndNonPositive(t *testing.T) {
	s := Resolve(Overrides{NodeColor: ptr(""), FontSize: ptr(-2.0)})

	assert.Equal(t, "mediumseagreen", s.NodeColor)
	assert.Equal(t, 16.0, s.FontSize)
}

func TestCombine(t *testing.T) {
	base := Overrides{FocusColor: ptr("red"), LinkColor: ptr("black")}
	top := Overrides{FocusColor: ptr("pink")}

	got := Resolve(Combine(base, top))
	assert.Equal(t, "pink", got.FocusColor)
	assert.Equal(t, "black", got.LinkColor)
}

func TestValidateRejectsEmpty(t *testing.T) {
	err := Validate(Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FocusColor")
	assert.Contains(t, err.Error(), "FontSize")
}

func TestDecodeOverridesFormats(t *testing.T) {
	cases := map[string]string{
		"json": `{"hoverColor":"green","fontSize":12,"unknown":"x"}`,
		"yaml": "hoverColor: green\nfontSize: 12\nunknown: x\n",
		"toml": "hoverColor = \"green\"\nfontSize = 12.0\nunknown = \"x\"\n",
	}
	for format, src := range cases {
		t.Run(format, func(t *testing.T) {
			o, err := DecodeOverrides(strings.NewReader(src), format)
			require.NoError(t, err)
			s := Resolve(o)
			assert.Equal(t, "green", s.HoverColor)
			assert.Equal(t, 12.0, s.FontSize)
			assert.Equal(t, "crimson", Default().HoverColor)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("graphOutColor: red\n"), 0o644))

	o, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, "red", Resolve(o).GraphOutColor)

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
