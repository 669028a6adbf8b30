package compare

import (
	"fmt"

	"github.com/mcncl/semjson/internal/models"
)

// Classify tags a decoded JSON value with its kind. Decoded values are built from
// nil, bool, float64, string, []any and map[string]any; any other dynamic type means
// the value did not come from a JSON decoder and Classify panics.
func Classify(decoded any) models.Value {
	switch v := decoded.(type) {
	case nil:
		return models.Value{Kind: models.KindNull}
	case bool:
		return models.Value{Kind: models.KindBoolean, Bool: v}
	case float64:
		return models.Value{Kind: models.KindNumber, Number: v}
	case string:
		return models.Value{Kind: models.KindString, String: v}
	case []any:
		return models.Value{Kind: models.KindArray, Array: v}
	case map[string]any:
		return models.Value{Kind: models.KindObject, Object: v}
	default:
		panic(fmt.Sprintf("unexpected type: %T", decoded))
	}
}

// nestingExceeds reports whether decoded holds containers nested more than limit
// levels deep. A scalar has no nesting, [] has one level, [[]] two.
func nestingExceeds(decoded any, limit int) bool {
	switch v := decoded.(type) {
	case []any:
		if limit == 0 {
			return true
		}
		for _, elem := range v {
			if nestingExceeds(elem, limit-1) {
				return true
			}
		}
	case map[string]any:
		if limit == 0 {
			return true
		}
		for _, elem := range v {
			if nestingExceeds(elem, limit-1) {
				return true
			}
		}
	}
	return false
}
