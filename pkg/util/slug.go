package util

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify derives a URL-safe identifier from a human-readable name.
func Slugify(name string) string {
	return slug.Make(name)
}

// UniqueSlug derives a slug from name and probes exists until an unused
// candidate is found, appending -2, -3, ... on collisions.
func UniqueSlug(name string, exists func(string) (bool, error)) (string, error) {
	base := Slugify(name)
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
