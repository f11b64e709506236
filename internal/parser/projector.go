package parser

import "github.com/njnj4101989-sudo/flipkart-payments/internal/model"

// Project 按映射投影到字段表：只保留已匹配列并改名，未匹配字段整列填充 Sentinel
// 列顺序与字段表顺序一致；零匹配同样返回完整列集合。
func Project(table *model.LogicalTable, mapping model.ColumnMapping, schema model.Schema) *model.ProjectedTable {
	fields := schema.Fields()
	out := &model.ProjectedTable{
		Fields: fields,
		Rows:   [][]string{},
	}
	if table == nil {
		return out
	}
	out.FirstRow = table.FirstRow

	colIdx := make([]int, len(fields))
	for i, f := range fields {
		colIdx[i] = -1
		label, ok := mapping[f]
		if !ok {
			continue
		}
		for j, l := range table.Labels {
			if l == label {
				colIdx[i] = j
				break
			}
		}
	}

	out.Rows = make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := make([]string, len(fields))
		for i := range fields {
			j := colIdx[i]
			switch {
			case j < 0:
				rec[i] = model.Sentinel
			case j < len(row):
				rec[i] = row[j]
			default:
				rec[i] = ""
			}
		}
		out.Rows = append(out.Rows, rec)
	}
	return out
}

// MissingFields 投影中以 Sentinel 整列补齐的字段
func MissingFields(mapping model.ColumnMapping, schema model.Schema) map[model.CanonicalField]bool {
	out := make(map[model.CanonicalField]bool)
	for _, f := range Unmatched(schema, mapping) {
		out[f] = true
	}
	return out
}
