package analyze

import (
	"go/types"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageInfo_ResolveType(t *testing.T) {
	info := loadPackage(t, storePkg)

	tests := []struct {
		expr       string
		wantExpr   string
		wantImport string
		wantKind   TypeKind
	}{
		{"uint32", "uint32", "", TypeKindNumeric},
		{"bool", "bool", "", TypeKindBool},
		{"[]byte", "[]byte", "", TypeKindOther},
		{"Cents", "Cents", "", TypeKindNumeric},
		{"OrderStatus", "OrderStatus", "", TypeKindString},
		{"Order", "Order", "", TypeKindOther},
		{" Cents ", "Cents", "", TypeKindNumeric},
		{"time.Duration", "time.Duration", "time", TypeKindNumeric},
		{"store.Cents", "Cents", "", TypeKindNumeric},
		{"newtype-generator/store.Cents", "Cents", "", TypeKindNumeric},
		{"newtype-generator/warehouse.BinCode", "warehouse.BinCode", "newtype-generator/warehouse", TypeKindString},
		{"encoding/json.Number", "json.Number", "encoding/json", TypeKindString},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := info.ResolveType(tt.expr)
			require.NoError(t, err)

			assert.Equal(t, tt.wantExpr, got.Expr)
			assert.Equal(t, tt.wantImport, got.ImportPath)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.NotNil(t, got.GoType)
		})
	}
}

func TestPackageInfo_ResolveType_Errors(t *testing.T) {
	info := loadPackage(t, storePkg)

	for _, expr := range []string{
		"",
		"Missing",
		"isKnownStatus",
		"[]time.Duration",
		"time.Missing",
		"newtype-generator/warehouse.bin",
		"warehouse.BinCode",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := info.ResolveType(expr)
			assert.Error(t, err)
		})
	}
}

func TestPackageInfo_ResolveType_OrderIndependent(t *testing.T) {
	info := loadPackage(t, storePkg)

	_, err := info.ResolveType("warehouse.BinCode")
	require.Error(t, err)

	got, err := info.ResolveType("newtype-generator/warehouse.BinCode")
	require.NoError(t, err)
	assert.Equal(t, "warehouse.BinCode", got.Expr)

	_, err = info.ResolveType("warehouse.BinCode")
	require.Error(t, err, "a package loaded by path is not reachable by its name")

	again, err := info.ResolveType("newtype-generator/warehouse.Shelf")
	require.NoError(t, err)
	assert.Equal(t, "newtype-generator/warehouse", again.ImportPath)
}

func TestPackageInfo_LookupFunc(t *testing.T) {
	info := loadPackage(t, storePkg)

	fn, ok := info.LookupFunc("isNonNegative")
	require.True(t, ok)
	assert.Equal(t, "isNonNegative", fn.Name)
	assert.Len(t, fn.Params(), 1)
	assert.Len(t, fn.Results(), 1)
	assert.Equal(t, "types.go", filepath.Base(fn.Pos.Filename))

	for _, name := range []string{"Positive", "Cents", "ErrNegative", "nothing"} {
		_, ok := info.LookupFunc(name)
		assert.False(t, ok, name)
	}
}

func TestPackageInfo_LookupFunc_SkipsGenerated(t *testing.T) {
	info := loadPackage(t, percentPkg)

	_, ok := info.LookupFunc("NewPercent")
	assert.False(t, ok)

	_, ok = info.LookupFunc("NewLegacyPercent")
	assert.True(t, ok)
}

func TestPackageInfo_DeclaredByHand(t *testing.T) {
	store := loadPackage(t, storePkg)

	_, ok := store.DeclaredByHand("Amount")
	assert.True(t, ok)

	_, ok = store.DeclaredByHand("ErrNegative")
	assert.True(t, ok)

	_, ok = store.DeclaredByHand("Price")
	assert.False(t, ok)

	percent := loadPackage(t, percentPkg)

	_, ok = percent.DeclaredByHand("Percent")
	assert.False(t, ok, "generated declarations are not hand-written")

	_, ok = percent.DeclaredByHand("Celsius")
	assert.True(t, ok)
}

func TestPackageInfo_Names(t *testing.T) {
	store := loadPackage(t, storePkg)

	assert.Contains(t, store.FuncNames(), "isKnownStatus")
	assert.Contains(t, store.FuncNames(), "NewDiscount")
	assert.NotContains(t, store.FuncNames(), "Positive")
	assert.NotContains(t, store.FuncNames(), "Cents")
	assert.Contains(t, store.TypeNames(), "Cents")
	assert.NotContains(t, store.TypeNames(), "isKnownStatus")
	assert.IsNonDecreasing(t, store.FuncNames())

	percent := loadPackage(t, percentPkg)
	assert.NotContains(t, percent.FuncNames(), "NewPercent")
	assert.NotContains(t, percent.TypeNames(), "Percent")
	assert.Contains(t, percent.TypeNames(), "RangeError")
}

func TestMatchUnary(t *testing.T) {
	info := loadPackage(t, storePkg)

	cents, err := info.ResolveType("Cents")
	require.NoError(t, err)

	tests := []struct {
		fn       string
		wantMode ArgMode
		wantErr  string
	}{
		{"isNonNegative", ArgByPointer, ""},
		{"amountError", ArgByValue, ""},
		{"countCents", ArgByValue, ""},
		{"twoArgs", ArgByValue, "takes 2 parameters"},
		{"variadicCheck", ArgByValue, "want exactly 1"},
		{"anyCheck", ArgByValue, "generic"},
		{"isKnownStatus", ArgByValue, "want"},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			fn, ok := info.LookupFunc(tt.fn)
			require.True(t, ok)

			mode, err := MatchUnary(fn, cents.GoType)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, mode)
		})
	}
}

func TestMatchUnary_Method(t *testing.T) {
	info := loadPackage(t, storePkg)

	cents, err := info.ResolveType("Cents")
	require.NoError(t, err)

	named, ok := cents.GoType.(*types.Named)
	require.True(t, ok)
	require.Positive(t, named.NumMethods())

	method := named.Method(0)
	fn := &FuncInfo{Name: method.Name(), Signature: method.Type().(*types.Signature)}

	_, err = MatchUnary(fn, cents.GoType)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "methods")
}

func TestResultClassification(t *testing.T) {
	info := loadPackage(t, storePkg)

	result := func(name string) types.Type {
		fn, ok := info.LookupFunc(name)
		require.True(t, ok, name)
		require.Len(t, fn.Results(), 1, name)

		return fn.Results()[0]
	}

	assert.True(t, IsBool(result("isKnownStatus")))
	assert.False(t, IsBool(result("countCents")))

	assert.True(t, IsString(result("statusMessage")))
	assert.True(t, IsString(result("statusReason")), "named string types count as string")

	assert.True(t, IsError(result("negativeError")))
	assert.False(t, IsError(result("amountError")))
	assert.True(t, ImplementsError(result("amountError")))
	assert.False(t, ImplementsError(result("statusMessage")))

	assert.Equal(t, "*AmountError", info.TypeString(result("amountError")))
	assert.Equal(t, "reason", info.TypeString(result("statusReason")))
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "string", TypeKindString.String())
	assert.Equal(t, "numeric", TypeKindNumeric.String())
	assert.Equal(t, "bool", TypeKindBool.String())
	assert.Equal(t, "other", TypeKindOther.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}
