package table

type TableSummary struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

type DumpQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=json csv"`
}

type DumpResponse struct {
	Table   string           `json:"table"`
	Columns []string         `json:"columns"`
	Count   int              `json:"count"`
	Rows    []map[string]any `json:"rows"`
}
