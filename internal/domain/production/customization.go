package production

import (
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"gorm.io/datatypes"
)

// Customization is an open map of customization details (player names,
// numbers, sponsor placement...). Values are primitives only; the
// production rules never interpret them.
type Customization = datatypes.JSONMap

// ValidateCustomization rejects nested structures
func ValidateCustomization(c Customization) error {
	for key, value := range c {
		switch value.(type) {
		case nil, string, bool, float64, float32, int, int32, int64:
		default:
			return shared.Validationf("Customization %q must be a string, number or boolean", key)
		}
	}
	return nil
}
