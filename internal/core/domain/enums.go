package domain

import "slices"

// Role is the access level of a user account.
type Role string

const (
	RoleFarmer Role = "Farmer"
	RoleClient Role = "Client"
	RoleAdmin  Role = "Admin"
)

// UserStatus gates whether a user may act through the API.
type UserStatus string

const (
	UserActive    UserStatus = "Active"
	UserInactive  UserStatus = "Inactive"
	UserSuspended UserStatus = "Suspended"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// CattleStatus is the market availability of an animal.
type CattleStatus string

const (
	CattleAvailable    CattleStatus = "Available"
	CattleSold         CattleStatus = "Sold"
	CattleNotAvailable CattleStatus = "Not Available"
)

// TradeStatus tracks a sale from agreement to handover.
type TradeStatus string

const (
	TradePending   TradeStatus = "Pending"
	TradeCompleted TradeStatus = "Completed"
	TradeCancelled TradeStatus = "Cancelled"
)

// Roles, UserStatuses, Genders, CattleStatuses and TradeStatuses list the
// accepted values in declaration order. The storage schema derives its CHECK
// constraints from them.
var (
	Roles          = []Role{RoleFarmer, RoleClient, RoleAdmin}
	UserStatuses   = []UserStatus{UserActive, UserInactive, UserSuspended}
	Genders        = []Gender{GenderMale, GenderFemale}
	CattleStatuses = []CattleStatus{CattleAvailable, CattleSold, CattleNotAvailable}
	TradeStatuses  = []TradeStatus{TradePending, TradeCompleted, TradeCancelled}
)

func (r Role) Valid() bool { return slices.Contains(Roles, r) }
func (s UserStatus) Valid() bool { return slices.Contains(UserStatuses, s) }
func (g Gender) Valid() bool { return slices.Contains(Genders, g) }
func (s CattleStatus) Valid() bool { return slices.Contains(CattleStatuses, s) }
func (s TradeStatus) Valid() bool { return slices.Contains(TradeStatuses, s) }

// Enum is implemented by every closed value set above.
type Enum interface {
	Valid() bool
}

// Strings converts an enum list to its raw values.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func checkEnum[T interface {
	~string
	Enum
}](field string, v T, values []T) error {
	if v.Valid() {
		return nil
	}
	return Invalid(field, "%q is not one of %v", string(v), Strings(values))
}
