// Package menu holds the static ordering vocabulary: item entries with prices,
// the four command entries and the localized reply strings.
//
// A Menu is immutable once built. It is injected into the order flow and the
// bot, so several locales can run side by side in one process.
package menu
