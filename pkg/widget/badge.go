package widget

import "strconv"

// Badge is the unread indicator on the closed widget button.
type Badge struct {
	Visible bool
	Label   string
}

// NewBadge is shown iff showBadge is set and unread > 0.
// Counts above nine are labelled "9+".
func NewBadge(showBadge bool, unread int) Badge {
	if !showBadge || unread <= 0 {
		return Badge{}
	}
	if unread > 9 {
		return Badge{Visible: true, Label: "9+"}
	}
	return Badge{Visible: true, Label: strconv.Itoa(unread)}
}
