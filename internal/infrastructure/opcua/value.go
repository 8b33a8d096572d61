package opcua

import (
	"fmt"

	"github.com/gopcua/opcua/ua"
)

// valueText приводит значение узла к тексту для разбора метки.
func valueText(v *ua.Variant) string {
	if v == nil {
		return ""
	}

	switch tv := v.Value().(type) {
	case nil:
		return ""
	case string:
		return tv
	case []byte:
		return string(tv)
	case *ua.LocalizedText:
		if tv == nil {
			return ""
		}
		return tv.Text
	case []string:
		if len(tv) == 0 {
			return ""
		}
		return tv[0]
	default:
		return fmt.Sprintf("%v", tv)
	}
}
