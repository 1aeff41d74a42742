// Package entities holds the stored record types of the multi-table design.
// Key fields always carry their namespace prefix (ACCOUNT#, PROFILE#, ...);
// see pkg/identifiers.
package entities

// Account is an authenticated user's identity record, created on first login.
// IsAdmin is informational only: authorization decisions read the token's
// group claim, never this field, which a post-auth hook may leave stale.
type Account struct {
	AccountID   string `dynamodbav:"accountId" json:"accountId"`
	Email       string `dynamodbav:"email" json:"email"`
	GivenName   string `dynamodbav:"givenName,omitempty" json:"givenName,omitempty"`
	FamilyName  string `dynamodbav:"familyName,omitempty" json:"familyName,omitempty"`
	PhoneNumber string `dynamodbav:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	City        string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	State       string `dynamodbav:"state,omitempty" json:"state,omitempty"`
	UnitType    string `dynamodbav:"unitType,omitempty" json:"unitType,omitempty"`
	UnitNumber  int    `dynamodbav:"unitNumber,omitempty" json:"unitNumber,omitempty"`
	IsAdmin     bool   `dynamodbav:"isAdmin" json:"isAdmin"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// AccountUpdate carries the self-service mutable fields. Nil means "leave
// unchanged"; email is Cognito-owned and immutable through this API.
type AccountUpdate struct {
	GivenName  *string
	FamilyName *string
	City       *string
	State      *string
	UnitType   *string
	UnitNumber *int
}

// IsEmpty reports whether no field was provided.
func (u AccountUpdate) IsEmpty() bool {
	return u.GivenName == nil && u.FamilyName == nil && u.City == nil &&
		u.State == nil && u.UnitType == nil && u.UnitNumber == nil
}

// DisplayName joins the name parts for admin listings; empty when unknown.
func (a *Account) DisplayName() string {
	switch {
	case a.GivenName != "" && a.FamilyName != "":
		return a.GivenName + " " + a.FamilyName
	case a.GivenName != "":
		return a.GivenName
	default:
		return a.FamilyName
	}
}
