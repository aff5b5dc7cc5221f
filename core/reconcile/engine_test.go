package reconcile

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"rados-compare/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objects(pairs ...any) []storage.Object {
	out := make([]storage.Object, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, storage.Object{Key: pairs[i].(string), Size: uint64(pairs[i+1].(int))})
	}
	return out
}

// TestReconcile_Outcomes tests every branch of the comparison.
func TestReconcile_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		a    []storage.Object
		b    []storage.Object
		want Result
	}{
		{
			name: "Disjoint sets are a union with original sizes",
			a:    objects("x", 10, "y", 20),
			b:    objects("z", 5),
			want: Result{"x": OnlyA(10), "y": OnlyA(20), "z": OnlyB(5)},
		},
		{
			name: "Identical sets cancel out",
			a:    objects("x", 10, "y", 20),
			b:    objects("y", 20, "x", 10),
			want: Result{},
		},
		{
			name: "Size mismatch keeps both sizes",
			a:    objects("x", 10, "y", 20),
			b:    objects("x", 10, "y", 25),
			want: Result{"y": SizeMismatch(20, 25)},
		},
		{
			name: "Zero byte objects are compared like any other",
			a:    objects("empty", 0),
			b:    objects("empty", 1),
			want: Result{"empty": SizeMismatch(0, 1)},
		},
		{
			name: "Both sides empty",
			want: Result{},
		},
		{
			name: "Duplicate key in A keeps the later size",
			a:    objects("x", 1, "x", 2),
			b:    objects("x", 2),
			want: Result{},
		},
		{
			name: "Duplicate key in B only keeps the later size",
			b:    objects("x", 1, "x", 2),
			want: Result{"x": OnlyB(2)},
		},
		{
			name: "Duplicate key in B resolving a mismatch",
			a:    objects("x", 7),
			b:    objects("x", 3, "x", 7),
			want: Result{},
		},
		{
			name: "Duplicate key in B after cancelling out",
			a:    objects("x", 7),
			b:    objects("x", 7, "x", 7),
			want: Result{"x": OnlyB(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.a, tt.b))
		})
	}
}

// TestEngine_PageBoundaries tests that splitting listings into pages never changes the result.
func TestEngine_PageBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		a, b := randomListings(rng, 200)
		want := Reconcile(a, b)

		engine := NewEngine()
		for _, page := range randomPages(rng, a) {
			engine.SeedA(page...)
		}
		for _, page := range randomPages(rng, b) {
			engine.ApplyB(page...)
		}

		require.Equal(t, want, engine.Result(), "round %d", round)
	}
}

// TestEngine_EqualPairsNeverReported tests that shared (key, size) pairs are always absent.
func TestEngine_EqualPairsNeverReported(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		a, b := randomListings(rng, 100)
		result := Reconcile(a, b)

		sizesA := make(map[string]uint64, len(a))
		for _, obj := range a {
			sizesA[obj.Key] = obj.Size
		}
		for _, obj := range b {
			if size, ok := sizesA[obj.Key]; ok && size == obj.Size {
				assert.NotContains(t, result, obj.Key)
			}
		}
		for key, entry := range result {
			_, inA := sizesA[key]
			switch entry.Status {
			case StatusOnlyA:
				assert.True(t, inA)
			case StatusOnlyB:
				assert.False(t, inA)
			case StatusSizeMismatch:
				assert.True(t, inA)
				assert.NotEqual(t, entry.SizeA, entry.SizeB)
			}
		}
	}
}

func TestEngine_SeedAfterApplyPanics(t *testing.T) {
	engine := NewEngine()
	engine.ApplyB(objects("x", 1)...)
	assert.Panics(t, func() { engine.SeedA(objects("y", 1)...) })
}

func TestResult_Helpers(t *testing.T) {
	result := Result{
		"c": OnlyB(5),
		"a": OnlyA(10),
		"b": SizeMismatch(20, 25),
	}

	assert.Equal(t, 3, result.Len())
	assert.Equal(t, 0, Result{}.Len())
	assert.Equal(t, []string{"a", "b", "c"}, result.Keys())
	assert.Equal(t, map[Status]int{StatusOnlyA: 1, StatusOnlyB: 1, StatusSizeMismatch: 1}, result.Counts())
	assert.Equal(t, map[string]uint64{"a": 10, "b": 25, "c": 5}, result.Sizes())
}

func TestEntry_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Result{
		"a": OnlyA(0),
		"b": OnlyB(5),
		"c": SizeMismatch(20, 25),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"a": {"status": "only_a", "size_a": 0},
		"b": {"status": "only_b", "size_b": 5},
		"c": {"status": "size_mismatch", "size_a": 20, "size_b": 25}
	}`, string(data))
}

// randomListings builds two listings with unique keys that partially overlap.
func randomListings(rng *rand.Rand, n int) ([]storage.Object, []storage.Object) {
	var a, b []storage.Object
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("obj-%04d", i)
		size := uint64(rng.Intn(4))
		switch rng.Intn(4) {
		case 0:
			a = append(a, storage.Object{Key: key, Size: size})
		case 1:
			b = append(b, storage.Object{Key: key, Size: size})
		case 2:
			a = append(a, storage.Object{Key: key, Size: size})
			b = append(b, storage.Object{Key: key, Size: size})
		default:
			a = append(a, storage.Object{Key: key, Size: size})
			b = append(b, storage.Object{Key: key, Size: size + 1})
		}
	}
	return a, b
}

func randomPages(rng *rand.Rand, objs []storage.Object) [][]storage.Object {
	var pages [][]storage.Object
	for len(objs) > 0 {
		n := rng.Intn(len(objs)) + 1
		pages = append(pages, objs[:n])
		objs = objs[n:]
	}
	return pages
}
