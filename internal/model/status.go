package model

// RequestStatus represents the lifecycle state of one download request
type RequestStatus string

const (
	// StatusIdle means no work has started for the request yet
	StatusIdle RequestStatus = "Idle"

	// StatusProbing means the source link is being probed for formats
	StatusProbing RequestStatus = "Probing"

	// StatusOffersPresented means offers were rendered and the request is
	// dormant until a selection arrives
	StatusOffersPresented RequestStatus = "OffersPresented"

	// StatusFulfilling means a selected download is being fetched and delivered
	StatusFulfilling RequestStatus = "Fulfilling"

	// StatusDone means the artifact was delivered successfully
	StatusDone RequestStatus = "Done"

	// StatusErrored means the request failed; a fresh link starts over
	StatusErrored RequestStatus = "Errored"
)

// String returns the string representation of RequestStatus
func (rs RequestStatus) String() string {
	return string(rs)
}

// IsTerminal returns true if no further transition is possible for the request
func (rs RequestStatus) IsTerminal() bool {
	return rs == StatusDone || rs == StatusErrored
}
