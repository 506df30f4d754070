// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Add("b", 1)
	om.Add("a", 2)
	om.Add("c", 3)
	om.Add("a", 4)

	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"b", "a", "c"}, om.Keys())
	assert.Equal(t, []int{1, 4, 3}, om.Values())
	assert.Equal(t, 4, om.ValueByKey("a"))

	assert.True(t, om.DeleteKey("b"))
	assert.False(t, om.DeleteKey("b"))
	assert.Equal(t, 0, om.IndexByKey("a"))
	assert.Equal(t, 1, om.IndexByKey("c"))
	_, ok := om.ValueByKeyTry("b")
	assert.False(t, ok)

	cl := om.Clone()
	cl.Add("d", 5)
	assert.Equal(t, 2, om.Len())
	assert.Equal(t, 3, cl.Len())

	var nilMap *Map[string, int]
	assert.Equal(t, 0, nilMap.Len())
	_, ok = nilMap.ValueByKeyTry("x")
	assert.False(t, ok)
}

func TestMapJSON(t *testing.T) {
	om := New[string, any]()
	om.Add("z", "last?")
	om.Add("a", 1.5)
	om.Add("m", true)

	b, err := json.Marshal(om)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last?","a":1.5,"m":true}`, string(b))

	nm := New[string, any]()
	require.NoError(t, json.Unmarshal(b, nm))
	assert.Equal(t, []string{"z", "a", "m"}, nm.Keys())
	assert.Equal(t, []any{"last?", 1.5, true}, nm.Values())

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), nm))
}
