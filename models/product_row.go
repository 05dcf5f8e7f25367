package models

import "strings"

// ProductRow is one SKU row from the catalog export, keyed by column header
type ProductRow map[string]string

// Column headers of the Elotec catalog export
const (
	ColNumber            = "Nummer"
	ColName              = "Navn"
	ColDefaultVariant    = "Forvalgt variant"
	ColVariants          = "Varianter"
	ColAccessories       = "Tilbehør"
	ColPages             = "Sider"
	ColNews              = "Nyhet"
	ColVariantMaster     = "Variantmaster"
	ColVariantProduct    = "Variantprodukt"
	ColHiddenInLists     = "Ikke synlig i lister"
	ColAttributeSet      = "Attributtsett"
	ColGroupIntermediate = "elo.group.intermediate"
	ColGroupMain         = "elo.group.main"
	ColGroupSub          = "elo.group.sub"
	ColProductNumber     = "elo.product.number"
	ColTitle             = "Tittel"
	ColTitleNorwegian    = "Tittel (Norsk)"
	ColColor             = "Farge"
	ColSalesText         = "Salgstekst (Norsk)"
	ColDescription       = "Beskrivelse (Norsk)"
)

// AttributeSetColor is the attribute set assigned to every generated row
const AttributeSetColor = "Farge"

// BaseFields are always present in the main export, in this order
var BaseFields = []string{
	ColNumber, ColName, ColDefaultVariant, ColVariants, ColAccessories,
	ColPages, ColNews, ColVariantMaster, ColVariantProduct, ColHiddenInLists,
	ColAttributeSet, ColGroupIntermediate, ColGroupMain, ColGroupSub,
	ColProductNumber, ColTitle, ColTitleNorwegian, ColColor,
}

// DescriptionFields are the columns of the description export
var DescriptionFields = []string{ColNumber, ColSalesText, ColDescription}

// Get returns the value of a column, or "" when the column is missing
func (r ProductRow) Get(column string) string {
	if r == nil {
		return ""
	}
	return r[column]
}

// IsVariantMaster reports whether the row is already a master in the source file
func (r ProductRow) IsVariantMaster() bool {
	return strings.ToLower(r.Get(ColVariantMaster)) == "true"
}

// IsBaseField reports whether column is one of BaseFields
func IsBaseField(column string) bool {
	for _, f := range BaseFields {
		if f == column {
			return true
		}
	}
	return false
}

// ExtraFields returns the header columns that are not base fields, in header order
func ExtraFields(header []string) []string {
	extra := make([]string, 0, len(header))
	for _, h := range header {
		if !IsBaseField(h) {
			extra = append(extra, h)
		}
	}
	return extra
}

// NewEmptyRow returns a row with every field set to ""
func NewEmptyRow(fields []string) ProductRow {
	row := make(ProductRow, len(fields))
	for _, f := range fields {
		row[f] = ""
	}
	return row
}
