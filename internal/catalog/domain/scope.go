package domain

// Recognized permission scopes. A route declares the scopes it requires; a
// token carries the scopes it was granted at login.
const (
	ScopeMe    = "me"
	ScopeItems = "items"
	ScopeRates = "rates"
	ScopeAdmin = "admin"
)

// ScopeDescriptions maps every recognized scope to its human-readable
// description, as advertised to API consumers.
var ScopeDescriptions = map[string]string{
	ScopeMe:    "Read information about the current user.",
	ScopeItems: "Read items.",
	ScopeRates: "Rate films.",
	ScopeAdmin: "Delete users.",
}
