package dump

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = "w,5,100,2024,3,10,14,1,Sunny,Spring Round,7,1.5,60\n" +
	"p,42,Alice,ALI,300,False,False,5000,1,200,2,10,3,4.5,Hero,0,http://x\n" +
	"a,True,Raiders,12,4000,90000,logo.png\n"

func TestParseClassification(t *testing.T) {
	records, err := Parse(sampleDump)
	require.NoError(t, err)

	require.NotNil(t, records.World)
	require.Len(t, records.Players, 1)
	require.Len(t, records.Alliances, 1)

	assert.Equal(t, 5, records.World.CurrentTick)
	assert.Equal(t, "Alice", records.Players[0].Name)
	assert.Equal(t, "Raiders", records.Alliances[0].Name)
}

func TestParseNewlineVariants(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"LF", "w,1,2,3,4,5,6,7,wd,d,9,1.0,60\np,1,A,T,1,False,False,1,1,1,1,1,1,1.0,x,0,u\n"},
		{"CR", "w,1,2,3,4,5,6,7,wd,d,9,1.0,60\rp,1,A,T,1,False,False,1,1,1,1,1,1,1.0,x,0,u\r"},
		{"CRLF", "w,1,2,3,4,5,6,7,wd,d,9,1.0,60\r\np,1,A,T,1,False,False,1,1,1,1,1,1,1.0,x,0,u\r\n"},
		{"NoTrailingNewline", "w,1,2,3,4,5,6,7,wd,d,9,1.0,60\np,1,A,T,1,False,False,1,1,1,1,1,1,1.0,x,0,u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.content)
			require.NoError(t, err)
			require.NotNil(t, records.World)
			assert.Len(t, records.Players, 1)
		})
	}
}

func TestParseSkipsEmptyLines(t *testing.T) {
	records, err := Parse("\n\n" + sampleDump + "\n\n")
	require.NoError(t, err)
	assert.NotNil(t, records.World)
	assert.Len(t, records.Players, 1)
}

func TestParseSkipsUnrecognizedTags(t *testing.T) {
	content := "z,garbage\n" + sampleDump + "x\n"
	records, err := Parse(content)
	require.NoError(t, err)

	// The junk lines must not disturb the valid ones around them.
	assert.NotNil(t, records.World)
	assert.Len(t, records.Players, 1)
	assert.Len(t, records.Alliances, 1)
}

func TestParseMissingDelimiterIsFatal(t *testing.T) {
	_, err := Parse("w5 100 2024\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.LineNo)
	assert.Contains(t, parseErr.Error(), "missing field delimiter")
}

func TestScanWorldLastLineWins(t *testing.T) {
	content := "w,5,100,2024,3,10,14,1,Sunny,Spring Round,7,1.5,60\n" +
		"p,42,Alice,ALI,300,False,False,5000,1,200,2,10,3,4.5,Hero,0,http://x\n" +
		"w,6,100,2024,3,10,15,1,Sunny,Spring Round,7,1.5,60\n"

	world, err := ScanWorld(content)
	require.NoError(t, err)
	require.NotNil(t, world)

	assert.Equal(t, 6, world.CurrentTick)
	assert.Equal(t, "6", world.ID)
	assert.Equal(t, content, world.RawData)
}

func TestScanWorldNoWorldLine(t *testing.T) {
	world, err := ScanWorld("p,42,Alice,ALI,300,False,False,5000,1,200,2,10,3,4.5,Hero,0,http://x\n")
	require.NoError(t, err)
	assert.Nil(t, world)
}

func TestScanWorldMissingDelimiterIsFatal(t *testing.T) {
	_, err := ScanWorld("wgarbage\n")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestStampAll(t *testing.T) {
	records, err := Parse(sampleDump)
	require.NoError(t, err)

	now := time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC)
	records.StampAll(now)

	for _, s := range []Stamp{records.World.Stamp, records.Players[0].Stamp, records.Alliances[0].Stamp} {
		assert.Equal(t, 5, s.WorldTickID)
		assert.Equal(t, 7, s.RoundNumber)
		assert.Equal(t, now, s.TimeAdded)
	}
}
