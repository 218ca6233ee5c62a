package models

import "gorm.io/gorm"

// Report is a citizen-submitted incident report (illegal activity or
// road mishap).
type Report struct {
	gorm.Model
	ReporterUserID uint   `json:"reporter_user_id" gorm:"index"`
	ReportType     string `json:"report_type" gorm:"size:40"` // illegal_activity / mishap
	City           string `json:"city"`
	Location       string `json:"location"`
	Details        string `json:"details"`
}
