package merger

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
)

func TestIntersectUnion(t *testing.T) {
	tests := []struct {
		name      string
		x, y      index.PostingList
		intersect index.PostingList
		union     index.PostingList
	}{
		{
			name:      "both empty",
			intersect: index.PostingList{},
			union:     index.PostingList{},
		},
		{
			name:      "left empty",
			y:         index.PostingList{1, 2},
			intersect: index.PostingList{},
			union:     index.PostingList{1, 2},
		},
		{
			name:      "disjoint interleaved",
			x:         index.PostingList{1, 3, 5},
			y:         index.PostingList{2, 4},
			intersect: index.PostingList{},
			union:     index.PostingList{1, 2, 3, 4, 5},
		},
		{
			name:      "overlap",
			x:         index.PostingList{1, 3, 5},
			y:         index.PostingList{2, 3},
			intersect: index.PostingList{3},
			union:     index.PostingList{1, 2, 3, 5},
		},
		{
			name:      "tail remains",
			x:         index.PostingList{2},
			y:         index.PostingList{3, 4},
			intersect: index.PostingList{},
			union:     index.PostingList{2, 3, 4},
		},
		{
			name:      "identical",
			x:         index.PostingList{7, 8, 9},
			y:         index.PostingList{7, 8, 9},
			intersect: index.PostingList{7, 8, 9},
			union:     index.PostingList{7, 8, 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.intersect, Intersect(tt.x, tt.y))
			require.Equal(t, tt.union, Union(tt.x, tt.y))
			require.Equal(t, tt.intersect, Intersect(tt.y, tt.x))
			require.Equal(t, tt.union, Union(tt.y, tt.x))
		})
	}
}

func randomPostingList(r *rand.Rand, maxLen, maxDoc int) index.PostingList {
	n := r.Intn(maxLen + 1)
	seen := make(map[int]struct{}, n)
	pl := make(index.PostingList, 0, n)
	for len(pl) < n && len(seen) < maxDoc {
		d := r.Intn(maxDoc) + 1
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		pl = append(pl, d)
	}
	slices.Sort(pl)
	return pl
}

func isSubset(sub, super index.PostingList) bool {
	for _, d := range sub {
		if _, found := slices.BinarySearch(super, d); !found {
			return false
		}
	}
	return true
}

func requireValid(t *testing.T, pl index.PostingList) {
	t.Helper()
	for i := 1; i < len(pl); i++ {
		require.Less(t, pl[i-1], pl[i], "postings must be strictly increasing")
	}
}

func TestMergeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		x := randomPostingList(r, 60, 100)
		y := randomPostingList(r, 60, 100)
		z := randomPostingList(r, 60, 100)

		and := Intersect(x, y)
		or := Union(x, y)
		requireValid(t, and)
		requireValid(t, or)

		require.Equal(t, and, Intersect(y, x))
		require.Equal(t, or, Union(y, x))
		require.Equal(t, Intersect(Intersect(x, y), z), Intersect(x, Intersect(y, z)))
		require.Equal(t, Union(Union(x, y), z), Union(x, Union(y, z)))

		require.Equal(t, []int(x), []int(Intersect(x, x)))
		require.Equal(t, []int(x), []int(Union(x, x)))

		require.True(t, isSubset(and, x))
		require.True(t, isSubset(and, y))
		require.True(t, isSubset(x, or))
		require.True(t, isSubset(y, or))

		require.Equal(t, len(x)+len(y), len(and)+len(or))
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	x := index.PostingList{1, 2, 3}
	y := index.PostingList{2, 3, 4}
	Intersect(x, y)
	Union(x, y)
	require.Equal(t, index.PostingList{1, 2, 3}, x)
	require.Equal(t, index.PostingList{2, 3, 4}, y)
}
