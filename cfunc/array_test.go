// Copyright 2026 go-cfunc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cfunc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 2, a.Shape(0))
	assert.Equal(t, 3, a.Shape(1))
	assert.True(t, a.Contiguous())
	assert.Equal(t, 6.0, a.At(1, 2))

	_, err = FromSlice([]float64{1, 2, 3}, 2, 2)
	assert.Error(t, err)

	_, err = FromSlice([]float64{1}, 1, 1, 1)
	assert.Error(t, err)
}

func TestTransposeNotContiguous(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	tr, err := a.Transpose()
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Shape(0))
	assert.Equal(t, 2, tr.Shape(1))
	assert.False(t, tr.Contiguous())
	assert.Nil(t, tr.Data())
	assert.Equal(t, a.At(0, 2), tr.At(2, 0))
}

func TestStepView(t *testing.T) {
	a, err := FromSlice([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	require.NoError(t, err)

	s, err := a.Step(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Shape(0))
	assert.False(t, s.Contiguous())
	assert.Equal(t, 0.0, s.At(0))
	assert.Equal(t, 3.0, s.At(1))
	assert.Equal(t, 6.0, s.At(2))
}

func TestNewStridedBounds(t *testing.T) {
	data := make([]float64, 10)

	_, err := NewStrided(data, []int{2, 3}, []int{5, 1})
	assert.NoError(t, err)

	_, err = NewStrided(data, []int{2, 3}, []int{8, 1})
	assert.Error(t, err, "view exceeding the slice must be rejected")

	_, err = NewStrided(data, []int{2, 3}, []int{5, 0})
	assert.Error(t, err, "zero stride must be rejected")

	_, err = NewStrided(data, []int{2, 3}, []int{5})
	assert.Error(t, err, "stride count must match rank")
}

func TestOverlap(t *testing.T) {
	data := make([]float64, 12)

	a, err := FromSlice(data[:6], 2, 3)
	require.NoError(t, err)
	b, err := FromSlice(data[6:], 2, 3)
	require.NoError(t, err)
	// Disjoint halves of one allocation do not overlap.
	assert.False(t, a.overlaps(b))

	c, err := FromSlice(data[3:9], 2, 3)
	require.NoError(t, err)
	assert.True(t, a.overlaps(c))
	assert.True(t, c.overlaps(b))

	other, err := NewArray[float64](2, 3)
	require.NoError(t, err)
	assert.False(t, a.overlaps(other))

	empty, err := FromSlice[float64](nil, 2, 0)
	require.NoError(t, err)
	assert.False(t, a.overlaps(empty))
}

func TestFreeze(t *testing.T) {
	a, err := NewArray[float64](3)
	require.NoError(t, err)
	require.True(t, a.Writable())

	a.Set(1.5, 0)
	a.Freeze()
	assert.False(t, a.Writable())
	assert.Panics(t, func() { a.Set(2.0, 1) })
	assert.Equal(t, 1.5, a.At(0))
}

func TestNewArrayPrec(t *testing.T) {
	a, err := NewArrayPrec[*big.Float](113, 2, 2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := a.At(i, j)
			require.NotNil(t, v)
			assert.Equal(t, uint(113), v.Prec())
		}
	}

	// Setting a value mutates the element in place, keeping its precision.
	elem := a.At(0, 0)
	a.Set(big.NewFloat(2.5).SetPrec(113), 0, 0)
	assert.Same(t, elem, a.At(0, 0))
	assert.Equal(t, uint(113), a.At(0, 0).Prec())
	f, _ := a.At(0, 0).Float64()
	assert.Equal(t, 2.5, f)
}
