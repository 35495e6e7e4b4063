package sitecontent

import "encoding/json"

// CoerceItems reshapes an arbitrary decoded JSON value into a content item
// sequence. Stored payloads and change-event values are not validated at the
// store, so anything that is not an array of objects coerces to an empty
// list rather than an error. Non-object elements within an array are skipped.
func CoerceItems(v interface{}) []ContentItem {
	switch val := v.(type) {
	case nil:
		return []ContentItem{}
	case []ContentItem:
		return val
	case []interface{}:
		items := make([]ContentItem, 0, len(val))
		for _, el := range val {
			obj, ok := el.(map[string]interface{})
			if !ok {
				continue
			}
			raw, err := json.Marshal(obj)
			if err != nil {
				continue
			}
			var item ContentItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			items = append(items, item)
		}
		return items
	case json.RawMessage:
		return CoerceRaw(val)
	default:
		return []ContentItem{}
	}
}

// CoerceRaw decodes a raw JSON payload and coerces it the same way.
func CoerceRaw(raw []byte) []ContentItem {
	if len(raw) == 0 {
		return []ContentItem{}
	}
	var items []ContentItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return []ContentItem{}
	}
	return CoerceItems(v)
}
