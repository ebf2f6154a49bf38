// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for the card.
const (
	// BorderWidth is the horizontal space consumed by a rounded border.
	BorderWidth = 2

	// BorderHeight is the vertical space consumed by a rounded border.
	BorderHeight = 2

	// HorizontalPadding is the blank column kept inside each border side.
	HorizontalPadding = 1

	// MinCardWidth is the narrowest card that still lays out its controls.
	MinCardWidth = 30
)
