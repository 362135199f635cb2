package dto

// ExportRequest query parameters of the export endpoints. Dates are
// "YYYY-MM-DD"; Format is "xlsx" (default) or "csv".
type ExportRequest struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Status    string `query:"status"`
	UserID    string `query:"userId"`
	Format    string `query:"format"`
}

// ExportFile rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
