package domain

import "time"

type Status string

const (
	StatusNormal   Status = "normal"
	StatusFollowed Status = "followed"
	StatusUpdated  Status = "updated"
)

// IsTracked reports whether the user subscribed to the show.
func (s Status) IsTracked() bool {
	return s == StatusFollowed || s == StatusUpdated
}

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusNormal, StatusFollowed, StatusUpdated:
		return Status(raw), true
	case "":
		return StatusNormal, true
	default:
		return "", false
	}
}

type Bangumi struct {
	ID string

	// Name est unique et sert de clé pour les filtres.
	Name string

	// Keyword is what the episode source searches for.
	Keyword string
	Cover   string

	// UpdateTime is a canonical weekday label (Mon..Sun).
	UpdateTime string

	Status  Status
	Episode int

	// SubtitleGroup holds the ", "-joined ids of the groups releasing the show.
	SubtitleGroup string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry converts a stored row into its render-time view.
func (b Bangumi) Entry() ShowEntry {
	ep := b.Episode
	return ShowEntry{
		Name:          b.Name,
		Status:        b.Status,
		UpdateTime:    b.UpdateTime,
		Episode:       &ep,
		SubtitleGroup: b.SubtitleGroup,
	}
}
