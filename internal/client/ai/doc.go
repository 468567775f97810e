// Package ai is the single entry point for outbound calls to the generative
// model. A Gateway turns a prompt into either free text or a typed value
// decoded from JSON that matches a declared Schema, retrying transport
// failures, empty bodies and malformed JSON with exponential backoff.
//
// The gateway holds no state between calls and never touches local storage.
package ai
