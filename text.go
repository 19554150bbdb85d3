package main

import "github.com/Zachkp/portfolio/internal/domain"

const (
	fallbackTitle       = "Software Developer"
	fallbackDescription = "Building software that's both useful and fun."

	fallbackBio = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes. ` +
		`Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a ` +
		`different language, experimenting with tools, or solving tricky problems. ` +
		`When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends, ` +
		`or chasing down a new challenge outside the screen.`
)

// fallbackProfile fills the hero and about sections until a profile has
// been saved from the admin area.
func fallbackProfile() *domain.Profile {
	return &domain.Profile{
		Title:       fallbackTitle,
		Description: fallbackDescription,
		Bio:         fallbackBio,
		GitHubURL:   "https://github.com/Zachkp",
	}
}
