package domain

type SubtitleGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
