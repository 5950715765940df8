package database

import (
	"database/sql"
	"os"
	"sync"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
)

// Service wraps the sqlite match-history store.
type Service struct {
	db         *sql.DB
	m          *sync.Mutex
	table_name string
}

var tableName = "nomination"

// New opens (or creates) the results database. The path comes from the
// NOMINATION_DB env var, loaded from .env when present.
func New() Service {
	path := os.Getenv("NOMINATION_DB")
	if path == "" {
		path = "./nomination.db"
	}
	return Open(path)
}

// Open opens a results database at an explicit path (":memory:" in tests).
func Open(path string) Service {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		panic(err)
	}

	sqlStmt := `
	create table if not exists nomination (
		id string not null primary key,
		created_at string,
		winner string,
		player1 string,
		player2 string,
		player3 string,
		player4 string,
		player5 string,
		player6 string,
		score1 integer,
		score2 integer,
		score3 integer,
		score4 integer,
		score5 integer,
		score6 integer
	);
	`
	_, err = db.Exec(sqlStmt)
	if err != nil {
		panic(err)
	}

	return Service{
		db:         db,
		table_name: tableName,
		m:          &sync.Mutex{},
	}
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.table_name
}

func scanResult(scan func(dest ...any) error) (GameResult, error) {
	var result GameResult
	err := scan(
		&result.ID,
		&result.CreatedAt,
		&result.Winner,
		&result.Player1,
		&result.Player2,
		&result.Player3,
		&result.Player4,
		&result.Player5,
		&result.Player6,
		&result.Score1,
		&result.Score2,
		&result.Score3,
		&result.Score4,
		&result.Score5,
		&result.Score6)
	return result, err
}

func (s *Service) GetAll() ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM " + s.table_name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) GetByID(id string) (GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return scanResult(s.db.QueryRow("SELECT * FROM "+s.table_name+" WHERE id = ?", id).Scan)
}

func (s *Service) Insert(result GameResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec("INSERT INTO "+s.table_name+
		" (id, created_at, winner, player1, player2, player3, player4, player5, player6, score1, score2, score3, score4, score5, score6)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		result.ID,
		result.CreatedAt,
		result.Winner,
		result.Player1,
		result.Player2,
		result.Player3,
		result.Player4,
		result.Player5,
		result.Player6,
		result.Score1,
		result.Score2,
		result.Score3,
		result.Score4,
		result.Score5,
		result.Score6)

	return err
}

func (s *Service) GetByPlayer(playerName string) ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM "+s.table_name+
		" WHERE player1 = ? OR player2 = ? OR player3 = ? OR player4 = ? OR player5 = ? OR player6 = ?",
		playerName,
		playerName,
		playerName,
		playerName,
		playerName,
		playerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows // No results found
	}

	return results, nil
}
