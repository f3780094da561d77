// Package models defines the records the idea board client keeps in its local
// store and exchanges with the remote API: users, ideas, verification codes
// and profiles. JSON field names follow the remote wire format (camelCase).
package models
