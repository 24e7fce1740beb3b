package models

import "fmt"

// DefaultAvatarURL is the image template new friends start with.
// The friend's ID is appended to it so every avatar URL is distinct.
const DefaultAvatarURL = "https://i.pravatar.cc/48"

// Friend represents one entry in the friend list.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format for new friends).
	ID string

	// Name is the display name of the friend.
	Name string

	// Image is the avatar URL.
	Image string

	// Balance is the signed amount between the user and this friend.
	// Negative = the user owes the friend, positive = the friend owes the user.
	Balance float64
}

// AvatarFor builds the avatar reference for a new friend by appending the
// friend's ID to the image template as a disambiguating query parameter.
func AvatarFor(template, id string) string {
	return fmt.Sprintf("%s?=%s", template, id)
}

// InitialFriends returns the demo friends the application starts with.
func InitialFriends() []Friend {
	return []Friend{
		{
			ID:      "118836",
			Name:    "Clark",
			Image:   "https://i.pravatar.cc/48?u=118836",
			Balance: -7,
		},
		{
			ID:      "933372",
			Name:    "Sarah",
			Image:   "https://i.pravatar.cc/48?u=933372",
			Balance: 20,
		},
		{
			ID:      "499476",
			Name:    "Anthony",
			Image:   "https://i.pravatar.cc/48?u=499476",
			Balance: 0,
		},
	}
}
