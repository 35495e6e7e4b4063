package sitecontent_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

func TestCoerceItems(t *testing.T) {
	t.Run("nil coerces to empty", func(t *testing.T) {
		items := sitecontent.CoerceItems(nil)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("typed slice passes through", func(t *testing.T) {
		in := []sitecontent.ContentItem{{ID: "dj", Title: "DJ Services"}}
		assert.Equal(t, in, sitecontent.CoerceItems(in))
	})

	t.Run("decoded JSON array", func(t *testing.T) {
		var v interface{}
		require.NoError(t, json.Unmarshal([]byte(`[
			{"id": "dj", "title": "DJ Services", "cta": "Book Now"},
			"not an object",
			{"id": "mc", "title": "MC Services"}
		]`), &v))

		items := sitecontent.CoerceItems(v)
		require.Len(t, items, 2)
		assert.Equal(t, "dj", items[0].ID)
		assert.Equal(t, "Book Now", items[0].Extra["cta"])
		assert.Equal(t, "mc", items[1].ID)
	})

	t.Run("scalar coerces to empty", func(t *testing.T) {
		assert.Empty(t, sitecontent.CoerceItems("hello"))
		assert.Empty(t, sitecontent.CoerceItems(42))
	})

	t.Run("raw message", func(t *testing.T) {
		items := sitecontent.CoerceItems(json.RawMessage(`[{"id": "dj", "title": "DJ"}]`))
		require.Len(t, items, 1)
		assert.Equal(t, "dj", items[0].ID)
	})
}

func TestCoerceRaw(t *testing.T) {
	assert.Empty(t, sitecontent.CoerceRaw(nil))
	assert.Empty(t, sitecontent.CoerceRaw([]byte(`{"not": "an array"}`)))
	assert.Empty(t, sitecontent.CoerceRaw([]byte(`garbage`)))

	items := sitecontent.CoerceRaw([]byte(`[{"id": "dj", "title": "DJ", "icon": "disc"}]`))
	require.Len(t, items, 1)
	assert.Equal(t, "disc", items[0].Icon)
}
