// server/internal/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportIllness      = "illness"
	ReportOutbreak     = "outbreak"
	ReportMentalHealth = "mentalHealth"
)

// ValidReportType reports whether t is one of the accepted report kinds.
func ValidReportType(t string) bool {
	switch t {
	case ReportIllness, ReportOutbreak, ReportMentalHealth:
		return true
	}
	return false
}

// Report is a geo-tagged incident report submitted by a patient and read by
// NGOs.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	ReportType string             `bson:"reportType" json:"reportType"`
	Details    string             `bson:"details" json:"details"`
	ReportedBy primitive.ObjectID `bson:"reportedBy" json:"reportedBy"`
	Location   GeoPoint           `bson:"location" json:"location"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
