package dump

import "time"

// Stamp carries the ingestion metadata shared by every record kind.
// It is filled in once per run, after the world line has resolved the
// round and tick the dump belongs to.
type Stamp struct {
	WorldTickID int       `bson:"worldTickId" json:"worldTickId"`
	RoundNumber int       `bson:"roundNumber" json:"roundNumber"`
	TimeAdded   time.Time `bson:"timeAdded" json:"timeAdded"`
}

// World is the single world-state record of a dump. Its ID is the tick
// number, which keys the round's world partition.
type World struct {
	Stamp `bson:",inline"`

	ID                 string  `bson:"_id" json:"id"`
	CurrentTick        int     `bson:"currentTick" json:"currentTick"`
	FinalTick          int     `bson:"finalTick" json:"finalTick"`
	GameYear           int     `bson:"gameYear" json:"gameYear"`
	GameMonth          int     `bson:"gameMonth" json:"gameMonth"`
	GameDay            int     `bson:"gameDay" json:"gameDay"`
	GameTime           int     `bson:"gameTime" json:"gameTime"`
	WeatherID          int     `bson:"weatherId" json:"weatherId"`
	WeatherDescription string  `bson:"weatherDescription" json:"weatherDescription"`
	Description        string  `bson:"description" json:"description"`
	Round              int     `bson:"round" json:"round"`
	DevMod             float64 `bson:"devMod" json:"devMod"`
	TickFrequency      int     `bson:"tickFrequency" json:"tickFrequency"`

	// RawData keeps the complete dump body for audit and replay.
	RawData string `bson:"rawData" json:"rawData"`
}

// Player is one player's standing at a given tick. Pk is the stable
// player id and keys the round's players partition, so a later tick
// replaces the record for the same player.
type Player struct {
	Stamp `bson:",inline"`

	Pk                 string  `bson:"pk" json:"pk"`
	PlayerID           int     `bson:"playerId" json:"playerId"`
	Name               string  `bson:"name" json:"name"`
	Tag                string  `bson:"tag" json:"tag"`
	Acres              int     `bson:"acres" json:"acres"`
	Locked             bool    `bson:"locked" json:"locked"`
	Sleep              bool    `bson:"sleep" json:"sleep"`
	Score              int64   `bson:"score" json:"score"`
	Rank               int     `bson:"rank" json:"rank"`
	Eff                int64   `bson:"eff" json:"eff"`
	EffectivenessRank  int     `bson:"effectivenessRank" json:"effectivenessRank"`
	Bhunt              int64   `bson:"bhunt" json:"bhunt"`
	BhuntRank          int     `bson:"bhuntRank" json:"bhuntRank"`
	HfRating           float64 `bson:"hfRating" json:"hfRating"`
	HfTitle            string  `bson:"hfTitle" json:"hfTitle"`
	Bounty             int     `bson:"bounty" json:"bounty"`
	Profile            string  `bson:"profile" json:"profile"`
}

// Alliance is one alliance's standing at a given tick, keyed by name.
type Alliance struct {
	Stamp `bson:",inline"`

	Pk      string `bson:"pk" json:"pk"`
	Public  bool   `bson:"public" json:"public"`
	Name    string `bson:"name" json:"name"`
	Members int    `bson:"members" json:"members"`
	Acres   int    `bson:"acres" json:"acres"`
	Score   int64  `bson:"score" json:"score"`
	Logo    string `bson:"logo" json:"logo"`
}

// Records holds everything decoded from a single dump.
type Records struct {
	World     *World
	Players   []*Player
	Alliances []*Alliance
}

// StampAll marks every record with the capture instant and the round and
// tick resolved from the world line. Records are never mutated after this;
// a new tick produces new records rather than edits.
func (r *Records) StampAll(now time.Time) {
	stamp := Stamp{
		WorldTickID: r.World.CurrentTick,
		RoundNumber: r.World.Round,
		TimeAdded:   now,
	}
	r.World.Stamp = stamp
	for _, p := range r.Players {
		p.Stamp = stamp
	}
	for _, a := range r.Alliances {
		a.Stamp = stamp
	}
}
