// Package marketway answers "where can I buy X?" questions for a physical
// marketplace. It resolves free text, transcribed speech and image labels
// into catalog lines and turns a line into walking directions from the
// market entrance.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package marketway
