// Package state keeps per-user conversation sessions for Telegram bots.
//
// A Store is keyed by Telegram user id and holds one value per user. Stores
// are safe for concurrent use; they do not serialize a user's updates, which
// is the job of middleware.SerializeByUser.
package state
