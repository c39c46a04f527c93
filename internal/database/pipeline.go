// server/internal/database/pipeline.go
package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stage builders for the owner-join pipelines shared by the read endpoints.
// Every list/detail view joins its primary collection to users on the owner
// reference and flattens the single matched user before projecting.

// MatchID filters a pipeline down to one document by primary key.
func MatchID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{"_id": id}}}
}

// MatchOwner filters by an owner reference field, e.g. events listed by the
// current user.
func MatchOwner(field string, owner primitive.ObjectID) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{field: owner}}}
}

// LookupUser joins the users collection on an owner reference.
func LookupUser(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         Users,
		"localField":   localField,
		"foreignField": "_id",
		"as":           as,
	}}}
}

// LookupNGOByContact joins the ngos collection where the contact person
// matches the given owner reference field.
func LookupNGOByContact(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         NGOs,
		"localField":   localField,
		"foreignField": "contactPerson",
		"as":           as,
	}}}
}

// Unwind flattens a one-element lookup array into a single object. A document
// whose lookup matched nothing is dropped from the results: the owner
// reference is required to resolve, and a miss means the data is corrupt, not
// that an empty view is valid.
func Unwind(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: path}}
}

// UnwindOptional flattens a lookup array but keeps the document when the
// lookup matched nothing. Used for joins that are display-only decoration,
// like the NGO name on a report detail.
func UnwindOptional(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{
		"path":                       path,
		"preserveNullAndEmptyArrays": true,
	}}}
}

// Project emits the declared public fields of a view.
func Project(fields bson.M) bson.D {
	return bson.D{{Key: "$project", Value: fields}}
}
