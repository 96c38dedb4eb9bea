package database

import (
	"database/sql"
	"os"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
)

// Service stores finished-match results. The driver is chosen through the
// environment (SUECA_DB_DRIVER / SUECA_DB_DSN); sqlite3 with a local file
// is the default, "pgx" selects Postgres.
type Service struct {
	db        *sql.DB
	m         *sync.Mutex
	tableName string
}

var tableName = "sueca_results"

const schema = `
	create table if not exists sueca_results (
		id text not null primary key,
		created_at text,
		player1 text,
		player2 text,
		player3 text,
		player4 text,
		team1_points integer,
		team2_points integer,
		team1_games integer,
		team2_games integer,
		rounds integer
	);
	`

// New opens the results store and ensures the schema exists.
func New() Service {
	driver := os.Getenv("SUECA_DB_DRIVER")
	if driver == "" {
		driver = "sqlite3"
	}
	dsn := os.Getenv("SUECA_DB_DSN")
	if dsn == "" {
		dsn = "./sueca.db"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		panic(err)
	}
	if _, err = db.Exec(schema); err != nil {
		panic(err)
	}

	return Service{
		db:        db,
		tableName: tableName,
		m:         &sync.Mutex{},
	}
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.tableName
}

func scanResult(scan func(dest ...any) error) (MatchResult, error) {
	var r MatchResult
	err := scan(
		&r.ID,
		&r.CreatedAt,
		&r.Player1,
		&r.Player2,
		&r.Player3,
		&r.Player4,
		&r.Team1Points,
		&r.Team2Points,
		&r.Team1Games,
		&r.Team2Games,
		&r.Rounds)
	return r, err
}

func (s *Service) GetAll() ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM " + s.tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

func (s *Service) GetByID(id string) (MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	row := s.db.QueryRow("SELECT * FROM "+s.tableName+" WHERE id = ?", id)
	return scanResult(row.Scan)
}

func (s *Service) Insert(result MatchResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec("INSERT INTO "+s.tableName+
		" (id, created_at, player1, player2, player3, player4, team1_points, team2_points, team1_games, team2_games, rounds)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		result.ID,
		result.CreatedAt,
		result.Player1,
		result.Player2,
		result.Player3,
		result.Player4,
		result.Team1Points,
		result.Team2Points,
		result.Team1Games,
		result.Team2Games,
		result.Rounds)
	return err
}

func (s *Service) GetByPlayer(playerName string) ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM "+s.tableName+
		" WHERE player1 = ? OR player2 = ? OR player3 = ? OR player4 = ?",
		playerName,
		playerName,
		playerName,
		playerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}

	return results, nil
}
