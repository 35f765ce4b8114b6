package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Match is a locally cached snapshot of one fixture from the external
// cricket data provider. ID is the provider's match id. RawData keeps the
// provider payload verbatim so the frontend can render fields we do not
// model explicitly.
type Match struct {
	ID           string         `json:"id" gorm:"primary_key"`
	Name         string         `json:"name" gorm:"not null"`
	MatchType    string         `json:"matchType"`
	Status       string         `json:"status"`
	Venue        string         `json:"venue"`
	Date         string         `json:"date"`
	DateTimeGMT  string         `json:"dateTimeGMT"`
	MatchStarted bool           `json:"matchStarted"`
	MatchEnded   bool           `json:"matchEnded"`
	RawData      datatypes.JSON `json:"data"`
	LastSyncedAt time.Time      `json:"lastSyncedAt"`
}
