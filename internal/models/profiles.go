// server/internal/models/profiles.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient is the role profile created at registration for role "patient".
type Patient struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	PreferredLang string             `bson:"preferredLang" json:"preferredLang"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HealthcareProvider is the role profile for role "healthcare_provider".
// CalLink is the consultation booking URL, empty until the provider sets one.
type HealthcareProvider struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User                   primitive.ObjectID `bson:"user" json:"user"`
	LicenseID              string             `bson:"licenseId" json:"licenseId"`
	Specialization         string             `bson:"specialization" json:"specialization"`
	AssociatedOrganization string             `bson:"associatedOrganization" json:"associatedOrganization"`
	YearsOfExperience      int                `bson:"yearsOfExperience" json:"yearsOfExperience"`
	PreferredLang          string             `bson:"preferredLang" json:"preferredLang"`
	CalLink                string             `bson:"calLink" json:"calLink"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NGO is the role profile for role "ngo". ContactPerson references the
// owning user.
type NGO struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContactPerson    primitive.ObjectID `bson:"contactPerson" json:"contactPerson"`
	OrganizationName string             `bson:"organizationName" json:"organizationName"`
	AreaOfFocus      string             `bson:"areaOfFocus" json:"areaOfFocus"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
