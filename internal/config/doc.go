// Package config defines the persisted settings for bookgrab and the
// conversions into the typed forms the pipeline consumes.
//
// Settings are stored as JSON with sensible defaults for anything the
// file omits:
//
//	settings, err := config.Load("~/.config/bookgrab/settings.json")
//	formats, _ := settings.FormatSet()
//	policy := settings.RetryPolicy()
//
// The download_attempts value uses 0 to mean "retry indefinitely",
// which RetryPolicy converts into an absent attempt cap so no other
// component has to know about the magic number.
package config
