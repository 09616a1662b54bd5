package entity

import "time"

// Session is one conference schedule slot.
type Session struct {
	ID          string    `json:"id" firestore:"id"`
	Day         int       `json:"day" firestore:"day"`
	TimeRange   string    `json:"time_range" firestore:"timeRange"`
	Title       string    `json:"title" firestore:"title"`
	Speaker     string    `json:"speaker" firestore:"speaker"`
	Tags        string    `json:"tags,omitempty" firestore:"tags,omitempty"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Locale      string    `json:"locale" firestore:"locale"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Speaker struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Title     string    `json:"title,omitempty" firestore:"title,omitempty"`
	Bio       string    `json:"bio,omitempty" firestore:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	Locale    string    `json:"locale" firestore:"locale"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Sponsor struct {
	ID      string `json:"id" firestore:"id"`
	Name    string `json:"name" firestore:"name"`
	Level   string `json:"level" firestore:"level"` // "gold", "silver", "bronze", "community"
	LogoURL string `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	Link    string `json:"link,omitempty" firestore:"link,omitempty"`
	Order   int    `json:"order" firestore:"order"`
}

// SponsorsData groups sponsors by level for presentation.
type SponsorsData struct {
	Gold      []Sponsor `json:"gold"`
	Silver    []Sponsor `json:"silver"`
	Bronze    []Sponsor `json:"bronze"`
	Community []Sponsor `json:"community"`
}

type Staff struct {
	ID       string `json:"id" firestore:"id"`
	Name     string `json:"name" firestore:"name"`
	Role     string `json:"role,omitempty" firestore:"role,omitempty"`
	PhotoURL string `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
}

type Link struct {
	ID    string `json:"id" firestore:"id"`
	Title string `json:"title" firestore:"title"`
	URL   string `json:"url" firestore:"url"`
	Order int    `json:"order" firestore:"order"`
}
