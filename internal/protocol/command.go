// Package protocol implements the line-oriented text protocol that mirrors
// game state to remote participants: one command per line, fields separated
// by colons, e.g. "play:bottom:AH".
package protocol

import (
	"strings"
	"unicode/utf8"
)

// Client -> server commands.
const (
	CmdCreate = "create" // create:<name>
	CmdJoin   = "join"   // join:<code>:<name>
	CmdStart  = "start"  // start (lobby creator only; bots fill empty seats)
	CmdPlay   = "play"   // play:<cardcode>; server -> client: play:<pos>:<cardcode>
	CmdName   = "name"   // name:<newname>; server -> client: name:<pos>:<newname>
	CmdSay    = "say"    // say:<text>; server -> client: say:<name>:<text>
	CmdPing   = "ping"
)

// Server -> client commands.
const (
	CmdCreated  = "created"  // created:<code>
	CmdLobby    = "lobby"    // lobby:<name>...
	CmdPosition = "position" // position:<pos>
	CmdGame     = "game"     // game:<ownpos>:<name>:<pos>...
	CmdRound    = "round"    // round:<card1>:...:<card10>:<trump>:<ownerpos>
	CmdTurn     = "turn"     // turn:<pos>
	CmdWinner   = "winner"   // winner:<pos>
	CmdScore    = "score"    // score:<pts1>:<pts2>:<won1>:<won2>
	CmdResult   = "result"   // result:tied or result:<pos>:<pos>:<victories>
	CmdInvalid  = "invalid"  // invalid:<reason>
	CmdFull     = "full"
	CmdOver     = "over" // over:<winnerpos1>:<winnerpos2>
	CmdPong     = "pong"
)

// PlayerNameMax bounds player names on the wire.
const PlayerNameMax = 32

// Command is one protocol line split into its name and arguments.
type Command struct {
	Name string
	Args []string
}

// New builds a command.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Parse splits a line into a command. Returns false on a blank line.
func Parse(line string) (Command, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Command{}, false
	}
	fields := strings.Split(line, ":")
	return Command{Name: fields[0], Args: fields[1:]}, true
}

// String renders the command as a single protocol line, without the
// trailing newline.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + ":" + strings.Join(c.Args, ":")
}

// Arg returns the i-th argument or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ValidName reports whether a player name is acceptable on the wire and
// returns it normalized: trimmed and truncated to at most PlayerNameMax
// bytes without splitting a rune. Colons would break the framing and are
// rejected.
func ValidName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if len(name) > PlayerNameMax {
		cut := PlayerNameMax
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	if name == "" || strings.Contains(name, ":") {
		return "", false
	}
	return name, true
}
