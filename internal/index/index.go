// Package index derives the grouping structures used by the aggregation
// queries. An Index is built once per dataset version and never mutated.
package index

import (
	"slices"
	"time"

	"tradeboard/internal/model"

	"github.com/shopspring/decimal"
)

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 2006"
)

// Group is the set of record positions sharing one key, in load order,
// with their weight pre-summed in metric tonnes.
type Group[K comparable] struct {
	Key    K
	Rows   []int
	Tonnes decimal.Decimal
}

// Count is the number of records in the group
func (g *Group[K]) Count() int {
	return len(g.Rows)
}

// Kg converts the summed tonnes to whole kilograms, truncating toward zero
func (g *Group[K]) Kg() int64 {
	return TonnesToKg(g.Tonnes)
}

// Grouping keeps groups in first-encountered key order
type Grouping[K comparable] struct {
	groups []*Group[K]
	pos    map[K]int
}

func newGrouping[K comparable]() Grouping[K] {
	return Grouping[K]{pos: make(map[K]int)}
}

func (g *Grouping[K]) add(key K, row int, tonnes decimal.Decimal) {
	i, ok := g.pos[key]
	if !ok {
		i = len(g.groups)
		g.pos[key] = i
		g.groups = append(g.groups, &Group[K]{Key: key, Tonnes: decimal.Zero})
	}
	grp := g.groups[i]
	grp.Rows = append(grp.Rows, row)
	grp.Tonnes = grp.Tonnes.Add(tonnes)
}

// Groups returns every group in insertion order. Callers must not modify it.
func (g *Grouping[K]) Groups() []*Group[K] {
	return g.groups
}

// Lookup finds the group for an exact key
func (g *Grouping[K]) Lookup(key K) (*Group[K], bool) {
	i, ok := g.pos[key]
	if !ok {
		return nil, false
	}
	return g.groups[i], true
}

// Len is the number of distinct keys
func (g *Grouping[K]) Len() int {
	return len(g.groups)
}

// Index holds every derived grouping over one dataset version
type Index struct {
	Version uint64
	Records []model.ShipmentRecord

	Companies   Grouping[model.CompanyKey]
	Commodities Grouping[string]
	Exporters   Grouping[string]
	Months      Grouping[string]

	// Listing holds record positions by shipment date, newest first
	Listing []int

	monthLabels   map[string]string
	companyByName map[string]*Group[model.CompanyKey]
}

// MonthLabel returns the display label ("Jan 2024") for a "2024-01" key
func (idx *Index) MonthLabel(key string) string {
	return idx.monthLabels[key]
}

// CompanyByName returns the first company, in load order, whose importer
// name equals name exactly. name is compared as opaque data.
func (idx *Index) CompanyByName(name string) (*Group[model.CompanyKey], bool) {
	g, ok := idx.companyByName[name]
	return g, ok
}

// DistinctImporters counts distinct importer names
func (idx *Index) DistinctImporters() int {
	return len(idx.companyByName)
}

// Build groups records in a single pass. records is retained, not copied.
func Build(records []model.ShipmentRecord, version uint64) *Index {
	idx := &Index{
		Version:     version,
		Records:     records,
		Companies:   newGrouping[model.CompanyKey](),
		Commodities: newGrouping[string](),
		Exporters:   newGrouping[string](),
		Months:      newGrouping[string](),
		Listing:     make([]int, len(records)),
		monthLabels: make(map[string]string),
	}

	for i, rec := range records {
		tonnes := decimal.NewFromFloat(rec.WeightMetricTonnes)
		idx.Companies.add(rec.ImporterKey(), i, tonnes)
		idx.Commodities.add(rec.CommodityName, i, tonnes)
		idx.Exporters.add(rec.ExporterName, i, tonnes)

		month := rec.ShipmentDate.Format(monthKeyLayout)
		idx.Months.add(month, i, tonnes)
		if _, ok := idx.monthLabels[month]; !ok {
			idx.monthLabels[month] = rec.ShipmentDate.Format(monthLabelLayout)
		}

		idx.Listing[i] = i
	}

	idx.companyByName = make(map[string]*Group[model.CompanyKey], idx.Companies.Len())
	for _, g := range idx.Companies.Groups() {
		if _, ok := idx.companyByName[g.Key.Name]; !ok {
			idx.companyByName[g.Key.Name] = g
		}
	}

	slices.SortStableFunc(idx.Listing, func(a, b int) int {
		return compareDesc(records[a].ShipmentDate, records[b].ShipmentDate)
	})

	return idx
}

func compareDesc(a, b time.Time) int {
	return b.Compare(a)
}

var thousand = decimal.NewFromInt(1000)

// TonnesToKg converts metric tonnes to whole kilograms, truncating toward zero
func TonnesToKg(tonnes decimal.Decimal) int64 {
	return tonnes.Mul(thousand).IntPart()
}
