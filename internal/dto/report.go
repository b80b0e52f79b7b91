package dto

// ReportQuery binds the date window of GET /reports/:type. Dates use the
// YYYY-MM-DD layout and both bounds are inclusive.
type ReportQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// ExportQuery extends ReportQuery with the output format, csv or pdf.
type ExportQuery struct {
	ReportQuery
	Format string `form:"format"`
}
