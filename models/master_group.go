package models

// MasterGroup is one color family: the synthesized master, its variants
// and the description rows that go with them
type MasterGroup struct {
	Base        string       `json:"base"`
	MasterRow   ProductRow   `json:"masterRow"`
	VariantRows []ProductRow `json:"variantRows"`
	DescRows    []ProductRow `json:"descRows"`
}

// MasterNumber returns the Nummer of the master row
func (g MasterGroup) MasterNumber() string {
	return g.MasterRow.Get(ColNumber)
}

// Rows returns the master followed by its variants
func (g MasterGroup) Rows() []ProductRow {
	rows := make([]ProductRow, 0, len(g.VariantRows)+1)
	rows = append(rows, g.MasterRow)
	rows = append(rows, g.VariantRows...)
	return rows
}

// GroupStats counts what happened to the input rows during grouping
type GroupStats struct {
	RowsRead         int `json:"rowsRead"`
	ExistingMasters  int `json:"existingMasters"`
	UnusableRows     int `json:"unusableRows"`
	UnresolvedColors int `json:"unresolvedColors"`
	SingletonGroups  int `json:"singletonGroups"`
	MasterGroups     int `json:"masterGroups"`
}
