package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	src := map[string]any{
		"server": map[string]any{"port": 8080},
		"tags":   []any{"a", map[string]any{"b": 1}},
		"name":   "kasane",
	}

	dst := Clone(src)
	assert.Equal(t, src, dst)

	dst["server"].(map[string]any)["port"] = 9090
	dst["tags"].([]any)[1].(map[string]any)["b"] = 2
	dst["name"] = "changed"

	assert.Equal(t, 8080, src["server"].(map[string]any)["port"])
	assert.Equal(t, 1, src["tags"].([]any)[1].(map[string]any)["b"])
	assert.Equal(t, "kasane", src["name"])
}

func TestClone_Nil(t *testing.T) {
	assert.Nil(t, Clone(nil))
	assert.Nil(t, CloneValue(nil))
	assert.Equal(t, []any(nil), CloneValue([]any(nil)))
}

func TestCloneValue_Scalar(t *testing.T) {
	assert.Equal(t, 42, CloneValue(42))
	assert.Equal(t, "x", CloneValue("x"))
}

func TestCloneValue_NonStringKeys(t *testing.T) {
	src := map[any]any{
		1:    "one",
		true: []any{map[any]any{2: "two"}},
	}

	dst := CloneValue(src).(map[any]any)
	assert.Equal(t, src, dst)

	dst[1] = "mutated"
	dst[true].([]any)[0].(map[any]any)[2] = "mutated"

	assert.Equal(t, "one", src[1])
	assert.Equal(t, "two", src[true].([]any)[0].(map[any]any)[2])
	assert.Equal(t, map[any]any(nil), CloneValue(map[any]any(nil)))
}
