package domain

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// IdentityQuality tells callers whether a profile is a login-time
// approximation or the authoritative record fetched from the platform.
type IdentityQuality string

const (
	// QualityProvisional marks an identity assembled client-side at
	// login/signup time, before the profile fetch has completed.
	QualityProvisional IdentityQuality = "provisional"
	// QualityConfirmed marks an identity returned by the platform's
	// profile endpoint.
	QualityConfirmed IdentityQuality = "confirmed"
)

// UserProfile models an authenticated actor of the reporting platform.
type UserProfile struct {
	ID              string          `json:"id,omitempty"`
	Username        string          `json:"username"`
	FullName        string          `json:"full_name,omitempty"`
	Email           string          `json:"email,omitempty"`
	Role            string          `json:"role"`
	PortfolioAccess []string        `json:"portfolio_access"`
	Status          string          `json:"status,omitempty"`
	Quality         IdentityQuality `json:"quality,omitempty"`
}

// Clone returns a deep copy so shared session state never leaks a mutable
// slice to callers.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	clone := *u
	if u.PortfolioAccess != nil {
		clone.PortfolioAccess = append([]string(nil), u.PortfolioAccess...)
	}
	return &clone
}

// PortfolioAccessForUsername approximates portfolio access from the username
// alone. Used only for the provisional identity until the profile fetch
// supplies the authoritative list.
func PortfolioAccessForUsername(username string) []string {
	switch username {
	case "admin":
		return []string{"dube-trade-port", "bertha-house"}
	case "dube-user":
		return []string{"dube-trade-port"}
	case "bertha-user":
		return []string{"bertha-house"}
	default:
		return []string{}
	}
}

// SeededRoster is the fallback client list served to an admin session when
// the roster endpoint cannot be reached.
func SeededRoster() []UserProfile {
	return []UserProfile{
		{
			Username:        "dube-user",
			FullName:        "Dube Trade Port Manager",
			Email:           "dube@dubetradeport.com",
			Role:            RoleClient,
			PortfolioAccess: []string{"dube-trade-port", "bertha-house"},
			Status:          "active",
			Quality:         QualityProvisional,
		},
		{
			Username:        "bertha-user",
			FullName:        "Bertha House Manager",
			Email:           "bertha@berthahouse.com",
			Role:            RoleClient,
			PortfolioAccess: []string{"bertha-house"},
			Status:          "active",
			Quality:         QualityProvisional,
		},
	}
}
