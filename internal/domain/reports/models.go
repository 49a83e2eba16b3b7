package reports

import "time"

type Report struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	ReportType            string    `json:"reportType"`
	PositionOrRole        string    `json:"positionOrRole"`
	DateRange             string    `json:"dateRange"`
	IncludeVisualizations bool      `json:"includeVisualizations"`
	FileName              string    `json:"fileName"`
	DownloadURL           string    `json:"downloadUrl"`
	ObjectKey             string    `json:"-"`
	GeneratedBy           string    `json:"generatedBy"`
	GeneratedAt           time.Time `json:"generatedAt"`
}

// Params are the requester's selections, echoed onto the rendered
// report and kept on the record. They are labels, not filters; the
// snapshot itself always covers the whole organization.
type Params struct {
	ReportType            string `json:"reportType"`
	PositionOrRole        string `json:"positionOrRole"`
	DateRange             string `json:"dateRange"`
	IncludeVisualizations bool   `json:"includeVisualizations"`
}
