package users

import "time"

// Transaction is a precommit transaction of deleting a user.
type Transaction struct {
	UID       string    `json:"uid"`
	Status    string    `json:"status"`
	Type      string    `json:"transactionType"`
	InfoUID   string    `json:"infoUid"`
	CreatedAt time.Time `json:"createdAt"`
	Details   []Detail  `json:"details"`
}

type Detail struct {
	UID       string `json:"uid"`
	RegionUID string `json:"regionUid"`
	Status    string `json:"status"`
}
