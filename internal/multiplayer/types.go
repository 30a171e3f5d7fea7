// Package multiplayer connects the games running on one SSH server. Each
// connection registers a session with the Hub and receives the events the
// other players broadcast: joins, departures and finished runs.
package multiplayer

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// Short returns the first eight characters, enough to tell sessions apart
// in logs.
func (id SessionID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
