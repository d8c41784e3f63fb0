package internal

const (
	COOKIE_CURRENT_DONOR_NAME = "bloodconnect_donor"
	COOKIE_CURRENT_DONOR_DAYS = 30
)
