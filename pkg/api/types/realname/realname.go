package realname

// Result is the response of the face verification callback.
type Result struct {
	UserUID    string `json:"userUid"`
	RealName   string `json:"realName"`
	IsVerified bool   `json:"isVerified"`
}
