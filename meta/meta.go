// meta/meta.go
package meta

// DefaultDepth is the search depth of a minimax agent unless configured.
const DefaultDepth = 10

// MaxDepthLimit bounds the configurable search depth. Each ply is one stack
// frame of the recursive search.
const MaxDepthLimit = 64

// DefaultCacheCapacity is the number of transposition entries kept per agent.
const DefaultCacheCapacity = 1 << 20

// DefaultEpisodeLength bounds a training episode; -1 plays until game over.
const DefaultEpisodeLength = -1

// MaxMoves stops a match that does not terminate on its own.
const MaxMoves = 10000

// DefaultGames is the number of games per match-up in experiments.
const DefaultGames = 10
