package bot

import (
	"math/rand/v2"
	"sync"
)

// Bot names are handed out without repeats so four bots at one table never
// share a name; Release returns a name to the pool when a bot is discarded.
var (
	botNames = []string{
		"George", "Tony", "Bill", "Steve",
		"Linus", "Alan", "Lula", "Jorge",
		"Durao", "Ferro", "Paulo", "Carlos",
		"Rui", "Amalia",
	}
	namesMu  sync.Mutex
	nameUsed = make(map[string]bool, len(botNames))
)

func takeName() string {
	namesMu.Lock()
	defer namesMu.Unlock()
	start := rand.IntN(len(botNames))
	for i := 0; i < len(botNames); i++ {
		name := botNames[(start+i)%len(botNames)]
		if !nameUsed[name] {
			nameUsed[name] = true
			return name
		}
	}
	// Pool exhausted; reuse is harmless beyond a duplicate label.
	return botNames[start]
}

func releaseName(name string) {
	namesMu.Lock()
	defer namesMu.Unlock()
	delete(nameUsed, name)
}
