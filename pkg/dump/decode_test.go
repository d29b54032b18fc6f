package dump

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDecodeWorld(t *testing.T) {
	raw := "w,5,100,2024,3,10,14,1,Sunny,Spring Round,7,1.5,60"
	w := DecodeWorld("5,100,2024,3,10,14,1,Sunny,Spring Round,7,1.5,60", raw)

	assert.Equal(t, "5", w.ID)
	assert.Equal(t, 5, w.CurrentTick)
	assert.Equal(t, 100, w.FinalTick)
	assert.Equal(t, 2024, w.GameYear)
	assert.Equal(t, 3, w.GameMonth)
	assert.Equal(t, 10, w.GameDay)
	assert.Equal(t, 14, w.GameTime)
	assert.Equal(t, 1, w.WeatherID)
	assert.Equal(t, "Sunny", w.WeatherDescription)
	assert.Equal(t, "Spring Round", w.Description)
	assert.Equal(t, 7, w.Round)
	assert.Equal(t, 1.5, w.DevMod)
	assert.Equal(t, 60, w.TickFrequency)
	assert.Equal(t, raw, w.RawData)
}

func TestDecodePlayer(t *testing.T) {
	p := DecodePlayer("42,Alice,ALI,300,False,False,5000,1,200,2,10,3,4.5,Hero,0,http://x")

	assert.Equal(t, "42", p.Pk)
	assert.Equal(t, 42, p.PlayerID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "ALI", p.Tag)
	assert.Equal(t, 300, p.Acres)
	assert.False(t, p.Locked)
	assert.False(t, p.Sleep)
	assert.Equal(t, int64(5000), p.Score)
	assert.Equal(t, 1, p.Rank)
	assert.Equal(t, int64(200), p.Eff)
	assert.Equal(t, 2, p.EffectivenessRank)
	assert.Equal(t, int64(10), p.Bhunt)
	assert.Equal(t, 3, p.BhuntRank)
	assert.Equal(t, 4.5, p.HfRating)
	assert.Equal(t, "Hero", p.HfTitle)
	assert.Equal(t, 0, p.Bounty)
	assert.Equal(t, "http://x", p.Profile)
}

func TestDecodeAlliance(t *testing.T) {
	a := DecodeAlliance("True,Raiders,12,4000,90000,logo.png")

	assert.Equal(t, "Raiders", a.Pk)
	assert.True(t, a.Public)
	assert.Equal(t, "Raiders", a.Name)
	assert.Equal(t, 12, a.Members)
	assert.Equal(t, 4000, a.Acres)
	assert.Equal(t, int64(90000), a.Score)
	assert.Equal(t, "logo.png", a.Logo)
}

func TestDecodePlayerBadAcres(t *testing.T) {
	p := DecodePlayer("42,Alice,ALI,not-a-number,False,False,5000,1,200,2,10,3,4.5,Hero,0,http://x")
	assert.Equal(t, 0, p.Acres)
	assert.Equal(t, int64(5000), p.Score)
}

func TestDecodeShortPayload(t *testing.T) {
	// Missing fields read as empty: zero numbers, false booleans, "" strings.
	p := DecodePlayer("42,Alice")
	assert.Equal(t, 42, p.PlayerID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 0, p.Acres)
	assert.False(t, p.Locked)
	assert.Equal(t, "", p.Profile)

	a := DecodeAlliance("")
	assert.Equal(t, "", a.Name)
	assert.Equal(t, int64(0), a.Score)
}

func TestDecodeLenientProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Any garbage in a numeric field decodes to zero, never a panic or error.
	properties.Property("non-numeric acres decodes to zero", prop.ForAll(
		func(junk string) bool {
			if _, err := strconv.Atoi(junk); err == nil {
				return true // happened to be numeric, not this property's concern
			}
			p := DecodePlayer("42,Alice,ALI," + junk + ",False,False,5000,1,200,2,10,3,4.5,Hero,0,http://x")
			return p.Acres == 0
		},
		gen.RegexMatch(`[a-zA-Z ]+`),
	))

	// Numeric fields round-trip through the decoder.
	properties.Property("numeric fields decode verbatim", prop.ForAll(
		func(id, acres int, score int64) bool {
			payload := strconv.Itoa(id) + ",Alice,ALI," + strconv.Itoa(acres) +
				",False,True," + strconv.FormatInt(score, 10) + ",1,200,2,10,3,4.5,Hero,0,http://x"
			p := DecodePlayer(payload)
			return p.PlayerID == id && p.Acres == acres && p.Score == score && p.Sleep
		},
		gen.IntRange(0, 1<<30),
		gen.IntRange(0, 1<<30),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
