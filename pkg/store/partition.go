package store

import "fmt"

const (
	worldPrefix     = "world"
	playersPrefix   = "players"
	alliancesPrefix = "alliances"
)

// Partitions names the three round-scoped collections. Every round gets
// its own independent set.
type Partitions struct {
	World     string
	Players   string
	Alliances string
}

// PartitionsFor derives the collection names for a round.
func PartitionsFor(round int) Partitions {
	return Partitions{
		World:     fmt.Sprintf("%s-%d", worldPrefix, round),
		Players:   fmt.Sprintf("%s-%d", playersPrefix, round),
		Alliances: fmt.Sprintf("%s-%d", alliancesPrefix, round),
	}
}
