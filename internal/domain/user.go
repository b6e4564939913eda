package domain

// User represents the authenticated identity, including the gamification fields
// maintained by the remote service
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Avatar         string `json:"avatar"`
	Level          int    `json:"level"`
	XP             int    `json:"xp"`
	XPForNextLevel int    `json:"xpForNextLevel"`
}
