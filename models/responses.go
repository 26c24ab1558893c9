package models

// HealthCheckResponse returns the health check response, the alive field
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// RegistrationResponse is the body returned by both registration endpoints.
// On a duplicate email the message is set and InsertedID stays null; on
// success only InsertedID is populated.
type RegistrationResponse struct {
	Message    string      `json:"message,omitempty"`
	InsertedID interface{} `json:"insertedId"`
}

// InsertedResponse is the body returned by the case request and article
// write paths.
type InsertedResponse struct {
	InsertedID interface{} `json:"insertedId"`
}

// LoginUnknownAccount signals that no account matched the submitted email.
type LoginUnknownAccount struct {
	User bool `json:"user"`
}

// LoginInvalidPin signals that the account exists but the password did not
// match. Clients rely on distinguishing this from an unknown account.
type LoginInvalidPin struct {
	User bool `json:"user"`
	Pin  bool `json:"pin"`
}

// LoginSuccess carries the session token and the stored account record.
type LoginSuccess struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// UnauthorizedResponse is the fixed body written by the access gate.
type UnauthorizedResponse struct {
	Message string `json:"message"`
}

// AdvocateProfileResponse is the advocate self-view: the advocate record
// joined with their incoming case requests and published articles.
type AdvocateProfileResponse struct {
	Advocate     *Advocate     `json:"advocate"`
	CaseRequests []CaseRequest `json:"caseRequests"`
	Articles     []Article     `json:"articles"`
}

// AdvocateDetailResponse is the public advocate view: the advocate record
// joined with their published articles.
type AdvocateDetailResponse struct {
	Advocate *Advocate `json:"advocate"`
	Articles []Article `json:"articles"`
}

// UserProfileResponse is the user self-view: the user record joined with
// their case requests, each resolved against the advocate collection.
type UserProfileResponse struct {
	User         *User             `json:"user"`
	UserRequests []UserCaseRequest `json:"userRequests"`
}

// AdvocateListResponse is the directory listing with its result count.
type AdvocateListResponse struct {
	Count     int        `json:"count"`
	Advocates []Advocate `json:"advocates"`
}

// ArticleListResponse wraps the unordered full article listing.
type ArticleListResponse struct {
	Articles []Article `json:"articles"`
}

// TopAdvocatesByPracticeArea maps each landing-page practice area to up to
// three advocates ordered by years of practice. Keys match the $facet
// branch names.
type TopAdvocatesByPracticeArea struct {
	CriminalLawyer  []Advocate `json:"criminalLawyer" bson:"criminalLawyer"`
	CivilLitigation []Advocate `json:"civilLitigation" bson:"civilLitigation"`
	FamilyLawyer    []Advocate `json:"familyLawyer" bson:"familyLawyer"`
	CorporateLawyer []Advocate `json:"corporateLawyer" bson:"corporateLawyer"`
}
