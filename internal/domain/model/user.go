package model

import (
	"strconv"
	"strings"
)

// User is the platform identity attached to every update. It is never stored.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName joins first and last name, skipping the missing one.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return strconv.FormatInt(u.ID, 10)
	}
	return name
}

// MentionURL is the deep link Telegram renders as a user mention.
func (u User) MentionURL() string { return "tg://user?id=" + strconv.FormatInt(u.ID, 10) }
