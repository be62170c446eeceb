package catalog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	skuPrefixLength = 3
	skuTimeLayout   = "20060102150405"
	maxSKUAttempts  = 1000
)

// SKUExistsFunc reports whether a SKU is already taken within the tenant
type SKUExistsFunc func(ctx context.Context, sku string) (bool, error)

var skuUpper = cases.Upper(language.Spanish)

// SKUBase builds SKU-<first 3 letters of name, upper>-<YYYYMMDDHHMMSS>
func SKUBase(name string, now time.Time) string {
	prefix := []rune(name)
	if len(prefix) > skuPrefixLength {
		prefix = prefix[:skuPrefixLength]
	}
	return fmt.Sprintf("SKU-%s-%s", skuUpper.String(string(prefix)), now.Format(skuTimeLayout))
}

// GenerateSKU returns the first free SKU among base, base-1, base-2, ...
func GenerateSKU(ctx context.Context, name string, now time.Time, exists SKUExistsFunc) (string, error) {
	base := SKUBase(name, now)
	candidate := base
	for counter := 1; counter <= maxSKUAttempts; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	return "", fmt.Errorf("no free SKU for %q after %d attempts", base, maxSKUAttempts)
}
