package domain

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page selects a window of a listing ordered by primary key.
type Page struct {
	Offset int `query:"offset"`
	Limit  int `query:"limit"`
}

// Normalize clamps the window to sane bounds.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
