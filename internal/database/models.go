package database

// MatchResult is one finished match as stored in the results table.
// Players 1 and 3 form team 1, players 2 and 4 team 2.
type MatchResult struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Player3     string `json:"player3"`
	Player4     string `json:"player4"`
	Team1Points int    `json:"team1_points"`
	Team2Points int    `json:"team2_points"`
	Team1Games  int    `json:"team1_games"`
	Team2Games  int    `json:"team2_games"`
	Rounds      int    `json:"rounds"`
}
