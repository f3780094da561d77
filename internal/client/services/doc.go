// Package services contains the application services of the Ignite client:
// accounts (signup, login, sessions, verification codes), the idea board
// (submission with local fallback and the tiered feed) and profiles.
//
// Services own no global state. Each one is built from an explicit *sql.DB
// handle, a repositories.Manager and its remote collaborators, and runs every
// read-modify-write sequence on the local store inside one transaction.
package services
