package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONB_Scan(t *testing.T) {
	var j JSONB

	require.NoError(t, j.Scan([]byte(`{"voltage":"5V"}`)))
	assert.Equal(t, `{"voltage":"5V"}`, string(j))

	require.NoError(t, j.Scan(`{"package":"SOIC-8"}`))
	assert.Equal(t, `{"package":"SOIC-8"}`, string(j))

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	assert.Error(t, j.Scan(42))
}

func TestJSONB_Value(t *testing.T) {
	v, err := JSONB(`{"a":1}`).Value()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v)

	v, err = JSONB(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONB_JSONPassthrough(t *testing.T) {
	c := Component{Name: "NE555", Parameters: JSONB(`{"package":"DIP-8"}`)}
	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"parameters":{"package":"DIP-8"}`)

	var back Component
	require.NoError(t, json.Unmarshal(out, &back))
	assert.JSONEq(t, `{"package":"DIP-8"}`, string(back.Parameters))

	empty, err := json.Marshal(Component{})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"parameters":null`)
}
