package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardEvaluator_EvalBool(t *testing.T) {
	g := NewGuardEvaluator()

	tests := []struct {
		name string
		expr string
		env  map[string]interface{}
		want bool
	}{
		{
			name: "string equality true",
			expr: `mode == "insert"`,
			env:  map[string]interface{}{"mode": "insert"},
			want: true,
		},
		{
			name: "string equality false",
			expr: `mode == "insert"`,
			env:  map[string]interface{}{"mode": "normal"},
			want: false,
		},
		{
			name: "undefined variable compares false",
			expr: `mode == "insert"`,
			env:  map[string]interface{}{},
			want: false,
		},
		{
			name: "logical and",
			expr: `mode == "insert" && focused`,
			env:  map[string]interface{}{"mode": "insert", "focused": true},
			want: true,
		},
		{
			name: "logical or",
			expr: `mode == "insert" || mode == "visual"`,
			env:  map[string]interface{}{"mode": "visual"},
			want: true,
		},
		{
			name: "negation",
			expr: `!readonly`,
			env:  map[string]interface{}{"readonly": false},
			want: true,
		},
		{
			name: "numeric comparison",
			expr: `row > 5`,
			env:  map[string]interface{}{"row": 10},
			want: true,
		},
		{
			name: "parentheses",
			expr: `(row > 5 || col > 5) && mode == "normal"`,
			env:  map[string]interface{}{"row": 0, "col": 9, "mode": "normal"},
			want: true,
		},
		{
			name: "boolean literal",
			expr: `true`,
			env:  nil,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.EvalBool(tt.expr, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardEvaluator_CompileErrors(t *testing.T) {
	g := NewGuardEvaluator()

	err := g.Compile(`mode ==`)
	assert.ErrorIs(t, err, ErrInvalidGuard)

	err = g.Compile(`os.Getenv("HOME") != ""`)
	assert.ErrorIs(t, err, ErrUnsafeGuard)

	err = g.Compile(`exec.Command("rm")`)
	assert.ErrorIs(t, err, ErrUnsafeGuard)
}

func TestGuardEvaluator_CachesPrograms(t *testing.T) {
	g := NewGuardEvaluator()

	require.NoError(t, g.Compile(`mode == "insert"`))
	require.Len(t, g.programCache, 1)

	// Second compile of the same expression reuses the cached program.
	require.NoError(t, g.Compile(`mode == "insert"`))
	require.Len(t, g.programCache, 1)

	_, err := g.EvalBool(`mode == "insert"`, map[string]interface{}{"mode": "insert"})
	require.NoError(t, err)
	require.Len(t, g.programCache, 1)
}
