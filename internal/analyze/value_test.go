package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyModeOf(t *testing.T) {
	info := loadPackage(t, storePkg)

	tests := []struct {
		expr    string
		want    CopyMode
		wantErr string
	}{
		{expr: "uint32", want: CopyNone},
		{expr: "string", want: CopyNone},
		{expr: "[4]Cents", want: CopyNone},
		{expr: "Order", want: CopyNone},
		{expr: "time.Time", want: CopyNone},
		{expr: "struct{ A int; B string }", want: CopyNone},
		{expr: "[]byte", want: CopySlice},
		{expr: "[]Order", want: CopySlice},
		{expr: "map[string]Cents", want: CopyMap},
		{expr: "*Cents", wantErr: "holds a pointer"},
		{expr: "[]*Cents", wantErr: "slice elements hold a pointer"},
		{expr: "[][]byte", wantErr: "slice elements hold a slice"},
		{expr: "map[string][]int", wantErr: "map values hold a slice"},
		{expr: "map[*int]int", wantErr: "map keys hold a pointer"},
		{expr: "chan int", wantErr: "channel"},
		{expr: "func()", wantErr: "func"},
		{expr: "any", wantErr: "interface"},
		{expr: "error", wantErr: "interface"},
		{expr: "[2][]int", wantErr: "slice"},
		{expr: "struct{ Lines []Cents }", wantErr: "slice (field Lines)"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ti, err := info.ResolveType(tt.expr)
			require.NoError(t, err)

			got, err := CopyModeOf(ti.GoType, info.Types)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCopyMode_ClonePkg(t *testing.T) {
	assert.Equal(t, "slices", CopySlice.ClonePkg())
	assert.Equal(t, "maps", CopyMap.ClonePkg())
	assert.Empty(t, CopyNone.ClonePkg())
}

func TestPackageInfo_MethodByHand(t *testing.T) {
	percent := loadPackage(t, percentPkg)

	pos, ok := percent.MethodByHand("LegacyPercent", "Known")
	require.True(t, ok)
	assert.Contains(t, pos.Filename, "legacy.go")

	_, ok = percent.MethodByHand("Percent", "Value")
	assert.False(t, ok, "generated methods are not hand-written")

	_, ok = percent.MethodByHand("Nothing", "Value")
	assert.False(t, ok)
}

func TestPackageInfo_MethodByHand_TypeNotGeneratedYet(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, map[string]string{
		"codec.go": "package tmp\n\nfunc (p *Percent) MarshalJSON() ([]byte, error) { return nil, nil }\n\n" +
			"func (b Box[T]) Value() T { var zero T; return zero }\n",
	})

	info, err := NewAnalyzer(dir).LoadPackage(".")
	require.NoError(t, err)

	_, ok := info.MethodByHand("Percent", "MarshalJSON")
	assert.True(t, ok)

	_, ok = info.MethodByHand("Box", "Value")
	assert.True(t, ok)
}
