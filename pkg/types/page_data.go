package types

type NavbarData struct {
	CurrentDonorID      string
	CurrentDonorName    string
	UnreadNotifications int
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title       string
	Notice      string
	Error       string
	FieldErrors map[string]string
	Navbar      NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

// FieldError returns the message for one form field, "" when it is valid.
func (d *BasePageData) FieldError(field string) string {
	return d.FieldErrors[field]
}
