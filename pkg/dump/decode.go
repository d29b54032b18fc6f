package dump

import (
	"strconv"
	"strings"
)

// The decoders are lenient about field values: the dump occasionally ships
// blank or garbage numeric fields, and a single bad field is not worth
// losing a tick over. Numbers fall back to 0, booleans to false, and a
// field missing entirely reads as empty. Strings are taken verbatim.

// field returns the i-th field, or "" when the payload is short.
func field(parts []string, i int) string {
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

func toInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func toInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func toFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func toBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

// DecodeWorld decodes a world payload. The raw dump body is retained on
// the record for audit and replay.
func DecodeWorld(data, raw string) *World {
	parts := strings.Split(data, ",")
	w := &World{
		CurrentTick:        toInt(field(parts, 0)),
		FinalTick:          toInt(field(parts, 1)),
		GameYear:           toInt(field(parts, 2)),
		GameMonth:          toInt(field(parts, 3)),
		GameDay:            toInt(field(parts, 4)),
		GameTime:           toInt(field(parts, 5)),
		WeatherID:          toInt(field(parts, 6)),
		WeatherDescription: field(parts, 7),
		Description:        field(parts, 8),
		Round:              toInt(field(parts, 9)),
		DevMod:             toFloat(field(parts, 10)),
		TickFrequency:      toInt(field(parts, 11)),
		RawData:            raw,
	}
	w.ID = strconv.Itoa(w.CurrentTick)
	return w
}

// DecodePlayer decodes a player payload.
func DecodePlayer(data string) *Player {
	parts := strings.Split(data, ",")
	p := &Player{
		PlayerID:          toInt(field(parts, 0)),
		Name:              field(parts, 1),
		Tag:               field(parts, 2),
		Acres:             toInt(field(parts, 3)),
		Locked:            toBool(field(parts, 4)),
		Sleep:             toBool(field(parts, 5)),
		Score:             toInt64(field(parts, 6)),
		Rank:              toInt(field(parts, 7)),
		Eff:               toInt64(field(parts, 8)),
		EffectivenessRank: toInt(field(parts, 9)),
		Bhunt:             toInt64(field(parts, 10)),
		BhuntRank:         toInt(field(parts, 11)),
		HfRating:          toFloat(field(parts, 12)),
		HfTitle:           field(parts, 13),
		Bounty:            toInt(field(parts, 14)),
		Profile:           field(parts, 15),
	}
	p.Pk = strconv.Itoa(p.PlayerID)
	return p
}

// DecodeAlliance decodes an alliance payload.
func DecodeAlliance(data string) *Alliance {
	parts := strings.Split(data, ",")
	a := &Alliance{
		Public:  toBool(field(parts, 0)),
		Name:    field(parts, 1),
		Members: toInt(field(parts, 2)),
		Acres:   toInt(field(parts, 3)),
		Score:   toInt64(field(parts, 4)),
		Logo:    field(parts, 5),
	}
	a.Pk = a.Name
	return a
}
