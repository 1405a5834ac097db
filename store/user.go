package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

var adjectives = []string{
	"Swift", "Brave", "Lucky", "Epic", "Mega", "Super", "Ultra", "Pro",
	"Mighty", "Noble", "Royal", "Divine", "Cosmic", "Stellar", "Thunder", "Shadow",
	"Golden", "Silver", "Diamond", "Platinum", "Mystic", "Ancient", "Legendary", "Supreme",
}

var nouns = []string{
	"Player", "Gamer", "King", "Star", "Champion", "Master", "Legend", "Hero",
	"Warrior", "Knight", "Dragon", "Phoenix", "Tiger", "Eagle", "Wolf", "Lion",
	"Wizard", "Ninja", "Samurai", "Gladiator", "Titan", "Emperor", "Ace", "Chief",
}

// NewAnonymousUser returns a user with a random ID and a generated name such
// as "CosmicTiger_1234".
func NewAnonymousUser(now time.Time) User {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return User{
		ID:        uuid.NewString(),
		Username:  fmt.Sprintf("%s%s_%d", adj, noun, rand.Intn(9999)),
		CreatedAt: now.UTC(),
	}
}
