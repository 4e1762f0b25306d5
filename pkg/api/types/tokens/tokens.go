package tokens

import "time"

type Detail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusChange is the body of POST /api/user/token/:id
type StatusChange struct {
	// "active" or "inactive"
	Status string `json:"status"`
}
