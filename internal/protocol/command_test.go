package protocol

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cmd, ok := Parse("play:bottom:AH")
	require.True(t, ok)
	assert.Equal(t, "play", cmd.Name)
	assert.Equal(t, []string{"bottom", "AH"}, cmd.Args)

	cmd, ok = Parse("ping")
	require.True(t, ok)
	assert.Equal(t, "ping", cmd.Name)
	assert.Empty(t, cmd.Args)

	cmd, ok = Parse("pong\r\n")
	require.True(t, ok, "line endings are stripped")
	assert.Equal(t, "pong", cmd.Name)

	_, ok = Parse("")
	assert.False(t, ok)
	_, ok = Parse("\r\n")
	assert.False(t, ok)
}

func TestStringRoundTrip(t *testing.T) {
	lines := []string{
		"play:bottom:AH",
		"round:2C:QC:7C:KD:AH:2S:3S:4S:5S:6S:7H:right",
		"full",
		"say:ana:good game",
	}
	for _, line := range lines {
		cmd, ok := Parse(line)
		require.True(t, ok, line)
		assert.Equal(t, line, cmd.String())
	}

	assert.Equal(t, "created:AB12C", New(CmdCreated, "AB12C").String())
	assert.Equal(t, "pong", New(CmdPong).String())
}

func TestArg(t *testing.T) {
	cmd := New(CmdJoin, "AB12C", "ana")
	assert.Equal(t, "AB12C", cmd.Arg(0))
	assert.Equal(t, "ana", cmd.Arg(1))
	assert.Equal(t, "", cmd.Arg(2), "missing arguments read as empty")
	assert.Equal(t, "", cmd.Arg(-1))
}

func TestValidName(t *testing.T) {
	name, ok := ValidName("  ana  ")
	require.True(t, ok)
	assert.Equal(t, "ana", name, "names are trimmed")

	_, ok = ValidName("")
	assert.False(t, ok)
	_, ok = ValidName("   ")
	assert.False(t, ok)
	_, ok = ValidName("a:b")
	assert.False(t, ok, "colons would break the framing")

	long := strings.Repeat("x", PlayerNameMax+10)
	name, ok = ValidName(long)
	require.True(t, ok)
	assert.Len(t, name, PlayerNameMax)

	exact := strings.Repeat("y", PlayerNameMax)
	name, ok = ValidName(exact)
	require.True(t, ok)
	assert.Equal(t, exact, name)
}

func TestValidNameTruncatesOnRuneBoundary(t *testing.T) {
	// 36 bytes of three-byte runes: a byte-32 cut would land mid-rune.
	name, ok := ValidName(strings.Repeat("日", 12))
	require.True(t, ok)
	assert.True(t, utf8.ValidString(name), "truncation must not split a rune")
	assert.Equal(t, strings.Repeat("日", 10), name)
	assert.LessOrEqual(t, len(name), PlayerNameMax)
}
