package variant

import (
	"strings"

	"elotec-nettbutikk/models"
	"elotec-nettbutikk/utils"
)

// MasterSuffix is appended to the base article number to form the master's Nummer
const MasterSuffix = "-X"

type member struct {
	row   models.ProductRow
	color string
}

type group struct {
	base    string
	members []member
}

// FieldNames returns the main export columns: base fields followed by extraFields
func FieldNames(extraFields []string) []string {
	fields := make([]string, 0, len(models.BaseFields)+len(extraFields))
	fields = append(fields, models.BaseFields...)
	return append(fields, extraFields...)
}

// Aggregate groups variant rows by base article number and builds one master per
// group of two or more. extraFields are the non-base input columns; they are copied
// from the first member to the master and from each row to its variant.
//
// Groups come back in the order their base was first seen. Rows that cannot be
// used are counted in the returned stats, never reported as errors.
func Aggregate(rows []models.ProductRow, extraFields []string) ([]models.MasterGroup, models.GroupStats) {
	stats := models.GroupStats{RowsRead: len(rows)}

	var order []string
	groups := make(map[string]*group)

	for _, row := range rows {
		if row.IsVariantMaster() {
			stats.ExistingMasters++
			continue
		}

		nameFields := []string{row.Get(models.ColName), row.Get(models.ColTitle), row.Get(models.ColTitleNorwegian)}
		base, color := ResolveColor(row.Get(models.ColProductNumber), nameFields, row.Get(models.ColColor))
		if base == "" {
			stats.UnusableRows++
			continue
		}
		if color == "" {
			stats.UnresolvedColors++
			continue
		}

		g, exists := groups[base]
		if !exists {
			g = &group{base: base}
			groups[base] = g
			order = append(order, base)
		}
		g.members = append(g.members, member{row: row, color: color})
	}

	fieldNames := FieldNames(extraFields)
	masters := make([]models.MasterGroup, 0, len(order))
	for _, base := range order {
		g := groups[base]
		if len(g.members) < 2 {
			stats.SingletonGroups++
			continue
		}
		masters = append(masters, buildMasterGroup(g, fieldNames, extraFields))
	}
	stats.MasterGroups = len(masters)

	return masters, stats
}

func buildMasterGroup(g *group, fieldNames, extraFields []string) models.MasterGroup {
	first := g.members[0].row

	numbers := make([]string, 0, len(g.members))
	productNumbers := make([]string, 0, len(g.members))
	pages := make([]string, 0, len(g.members))
	for _, m := range g.members {
		numbers = append(numbers, m.row.Get(models.ColNumber))
		productNumbers = append(productNumbers, m.row.Get(models.ColProductNumber))
		pages = append(pages, m.row.Get(models.ColPages))
	}

	master := models.NewEmptyRow(fieldNames)
	master[models.ColNumber] = g.base + MasterSuffix
	master[models.ColName] = CleanName(first.Get(models.ColName))
	master[models.ColVariantMaster] = "true"
	master[models.ColVariantProduct] = "false"
	master[models.ColHiddenInLists] = "false"
	master[models.ColAttributeSet] = models.AttributeSetColor
	master[models.ColNews] = "false"
	master[models.ColProductNumber] = strings.Join(productNumbers, " / ")
	master[models.ColVariants] = strings.Join(numbers, ",")
	master[models.ColDefaultVariant] = first.Get(models.ColNumber)
	master[models.ColPages] = utils.MergePages(pages...)
	for _, f := range []string{
		models.ColGroupIntermediate, models.ColGroupMain, models.ColGroupSub,
		models.ColTitle, models.ColTitleNorwegian, models.ColAccessories,
	} {
		master[f] = first.Get(f)
	}
	for _, f := range extraFields {
		master[f] = first.Get(f)
	}

	descRows := []models.ProductRow{{
		models.ColNumber:      master[models.ColNumber],
		models.ColSalesText:   first.Get(models.ColSalesText),
		models.ColDescription: first.Get(models.ColDescription),
	}}

	variants := make([]models.ProductRow, 0, len(g.members))
	for _, m := range g.members {
		v := models.NewEmptyRow(fieldNames)
		v[models.ColNumber] = m.row.Get(models.ColNumber)
		v[models.ColName] = m.row.Get(models.ColName)
		v[models.ColVariantMaster] = "false"
		v[models.ColVariantProduct] = "true"
		v[models.ColHiddenInLists] = "true"
		v[models.ColAttributeSet] = models.AttributeSetColor
		v[models.ColColor] = m.color
		for _, f := range extraFields {
			v[f] = m.row.Get(f)
		}
		variants = append(variants, v)

		descRows = append(descRows, models.ProductRow{
			models.ColNumber:      v[models.ColNumber],
			models.ColSalesText:   "",
			models.ColDescription: "",
		})
	}

	return models.MasterGroup{
		Base:        g.base,
		MasterRow:   master,
		VariantRows: variants,
		DescRows:    descRows,
	}
}
