package domain

// Report is a printable summary made of titled sections.
type Report struct {
	Title    string
	Subtitle string
	Sections []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail is a single row of a section.
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
