package filesystem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		path    string
		suffix  string
		allowed bool
	}{
		{"icon.svg", ".svg", true},
		{"ICON.SVG", ".svg", true},
		{"/abs/dir/Icon.Svg", ".svg", true},
		{"icon.svg", ".SVG", true},
		{"test.txt", ".svg", false},
		{"svg", ".svg", false},
		{"icon.svg.bak", ".svg", false},
		{"", ".svg", false},
		{"Component.tsx", ".tsx", true},
		{"Component.TSX", ".tsx", true},
		{"test.js", ".tsx", false},
		{"Component.ts", ".tsx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path+"_"+tt.suffix, func(t *testing.T) {
			err := ValidateExtension(tt.path, tt.suffix)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrWrongExtension)
			}
		})
	}
}

func TestExtensionPolicy_Check(t *testing.T) {
	require.NoError(t, SVGPolicy.Check("a.svg"))
	require.ErrorIs(t, SVGPolicy.Check("a.tsx"), ErrWrongExtension)
	require.NoError(t, TSXPolicy.Check("a.tsx"))
	require.ErrorIs(t, TSXPolicy.Check("a.svg"), ErrWrongExtension)
}
