// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	kl := New[string, int]()
	assert.NoError(t, kl.Add("key0", 0))
	assert.NoError(t, kl.Add("key1", 1))
	assert.Error(t, kl.Add("key1", 2))
	kl.Set("key2", 2)
	kl.Set("key0", 10)

	assert.Equal(t, []string{"key0", "key1", "key2"}, kl.Keys)
	assert.Equal(t, []int{10, 1, 2}, kl.Values)
	assert.Equal(t, 1, kl.At("key1"))
	_, ok := kl.AtTry("missing")
	assert.False(t, ok)

	assert.True(t, kl.DeleteByKey("key1"))
	assert.False(t, kl.DeleteByKey("key1"))
	assert.Equal(t, 1, kl.IndexByKey("key2"))
	assert.Equal(t, 2, kl.Len())

	cp := kl.Clone()
	cp.Set("key3", 3)
	assert.Equal(t, 2, kl.Len())
	assert.Equal(t, 3, cp.Len())
}
