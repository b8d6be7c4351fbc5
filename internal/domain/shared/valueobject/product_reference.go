package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ProductKind discriminates the closed set of product identities that
// supply can be held in: a bottled SKU (wine variant + bottle format)
// or a bulk liquid product awaiting bottling.
type ProductKind string

const (
	ProductKindBottleSKU     ProductKind = "bottle_sku"
	ProductKindLiquidProduct ProductKind = "liquid_product"
)

// ProductReference is a tagged product identity. Exactly one variant is
// populated, matching the kind; illegal combinations are rejected at
// construction so they cannot be persisted.
type ProductReference struct {
	kind          ProductKind
	wineVariantID uuid.UUID
	formatID      uuid.UUID
	liquidID      uuid.UUID
}

// NewBottleSKU creates a reference to a bottled SKU
func NewBottleSKU(wineVariantID, formatID uuid.UUID) (ProductReference, error) {
	if wineVariantID == uuid.Nil {
		return ProductReference{}, errors.New("wine variant ID cannot be empty")
	}
	if formatID == uuid.Nil {
		return ProductReference{}, errors.New("format ID cannot be empty")
	}
	return ProductReference{
		kind:          ProductKindBottleSKU,
		wineVariantID: wineVariantID,
		formatID:      formatID,
	}, nil
}

// NewLiquidProduct creates a reference to a bulk liquid product
func NewLiquidProduct(liquidID uuid.UUID) (ProductReference, error) {
	if liquidID == uuid.Nil {
		return ProductReference{}, errors.New("liquid product ID cannot be empty")
	}
	return ProductReference{
		kind:     ProductKindLiquidProduct,
		liquidID: liquidID,
	}, nil
}

// Kind returns the product kind tag
func (p ProductReference) Kind() ProductKind {
	return p.kind
}

// IsBottleSKU returns true for bottled SKU references
func (p ProductReference) IsBottleSKU() bool {
	return p.kind == ProductKindBottleSKU
}

// BottleSKU returns the wine variant and format IDs; ok is false for
// liquid references.
func (p ProductReference) BottleSKU() (wineVariantID, formatID uuid.UUID, ok bool) {
	if p.kind != ProductKindBottleSKU {
		return uuid.Nil, uuid.Nil, false
	}
	return p.wineVariantID, p.formatID, true
}

// LiquidProduct returns the liquid product ID; ok is false for bottled
// references.
func (p ProductReference) LiquidProduct() (uuid.UUID, bool) {
	if p.kind != ProductKindLiquidProduct {
		return uuid.Nil, false
	}
	return p.liquidID, true
}

// Equal compares two references for identity
func (p ProductReference) Equal(other ProductReference) bool {
	return p == other
}

// IsZero returns true for the zero reference
func (p ProductReference) IsZero() bool {
	return p.kind == ""
}

// String renders the reference as kind:id[:id]
func (p ProductReference) String() string {
	switch p.kind {
	case ProductKindBottleSKU:
		return fmt.Sprintf("%s:%s:%s", p.kind, p.wineVariantID, p.formatID)
	case ProductKindLiquidProduct:
		return fmt.Sprintf("%s:%s", p.kind, p.liquidID)
	default:
		return ""
	}
}

// ParseProductReference parses the String form back into a reference
func ParseProductReference(s string) (ProductReference, error) {
	parts := strings.Split(s, ":")
	switch {
	case len(parts) == 3 && ProductKind(parts[0]) == ProductKindBottleSKU:
		variantID, err := uuid.Parse(parts[1])
		if err != nil {
			return ProductReference{}, fmt.Errorf("invalid wine variant ID: %w", err)
		}
		formatID, err := uuid.Parse(parts[2])
		if err != nil {
			return ProductReference{}, fmt.Errorf("invalid format ID: %w", err)
		}
		return NewBottleSKU(variantID, formatID)
	case len(parts) == 2 && ProductKind(parts[0]) == ProductKindLiquidProduct:
		liquidID, err := uuid.Parse(parts[1])
		if err != nil {
			return ProductReference{}, fmt.Errorf("invalid liquid product ID: %w", err)
		}
		return NewLiquidProduct(liquidID)
	default:
		return ProductReference{}, fmt.Errorf("invalid product reference: %q", s)
	}
}

// Value implements driver.Valuer for database storage
func (p ProductReference) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	return p.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *ProductReference) Scan(value interface{}) error {
	if value == nil {
		*p = ProductReference{}
		return nil
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductReference", value)
	}
	ref, err := ParseProductReference(s)
	if err != nil {
		return err
	}
	*p = ref
	return nil
}
