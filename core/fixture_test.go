package core

import (
	"github.com/huangsam/pivotrend/schema"
)

// regionDataset has two regions with two programs each over three academic years.
//
//	2023/24 Liguria  Physics  10
//	2022/23 Liguria  Physics  20
//	2021/22 Liguria  Physics  15
//	2023/24 Liguria  History   5
//	2023/24 Piemonte Physics   8
//	2022/23 Piemonte Physics   -
//	2021/22 Piemonte Law       4
func regionDataset() *schema.Dataset {
	return &schema.Dataset{
		Categories: []schema.CategoryColumn{
			{DisplayName: "Year", Values: []string{"2023/24", "2022/23", "2021/22", "2023/24", "2023/24", "2022/23", "2021/22"}},
			{DisplayName: "Region", Values: []string{"Liguria", "Liguria", "Liguria", "Liguria", "Piemonte", "Piemonte", "Piemonte"}},
			{DisplayName: "Program", Values: []string{"Physics", "Physics", "Physics", "History", "Physics", "Physics", "Law"}},
		},
		Values: []schema.ValueColumn{{
			DisplayName: "Enrolled",
			Values: []*float64{
				schema.Float(10), schema.Float(20), schema.Float(15), schema.Float(5),
				schema.Float(8), nil, schema.Float(4),
			},
		}},
	}
}

// cellTexts returns the text of every cell of a row.
func cellTexts(row schema.TableRow) []string {
	out := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		out = append(out, c.Text)
	}
	return out
}
