// Package common contains shared constants and sentinel errors used across
// the ATS CV generator components.
package common

// KeyPrefix namespaces every key the client writes to its local store so the
// database can be shared with unrelated data without collisions.
const KeyPrefix = "ats_cv_generator_pro_"

// AppName is shown in the REPL banner.
const AppName = "ATS CV Generator Pro"
