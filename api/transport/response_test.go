package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewList_CarriesCountMeta(t *testing.T) {
	env := NewList([]string{"a", "b", "c"}, 3)
	body, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":["a","b","c"],"meta":{"count":3}}`, string(body))
}

func TestNewError_CarriesRequestMeta(t *testing.T) {
	env := NewError("NOT_FOUND", "task not found", RequestMeta{RequestID: "req-1"})
	body, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","code":"NOT_FOUND","error":"task not found","meta":{"requestId":"req-1"}}`, string(body))
}

func TestNewSuccess_OmitsEmptyMeta(t *testing.T) {
	body, err := json.Marshal(NewSuccess(map[string]int{"x": 1}, nil))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "meta")
}
