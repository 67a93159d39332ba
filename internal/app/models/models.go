package models

// ProgrammeType is how a programme is delivered.
type ProgrammeType string

const (
	ProgrammeFullTime ProgrammeType = "full-time"
	ProgrammePartTime ProgrammeType = "part-time"
	ProgrammeDistance ProgrammeType = "distance"
)

// Degree is the qualification a programme leads to.
type Degree string

const (
	DegreeBachelor Degree = "bachelor"
	DegreeMaster   Degree = "master"
)

// ProgrammeTypes lists the accepted programme types in display order.
var ProgrammeTypes = []string{string(ProgrammeFullTime), string(ProgrammePartTime), string(ProgrammeDistance)}

// Degrees lists the accepted degrees.
var Degrees = []string{string(DegreeBachelor), string(DegreeMaster)}
