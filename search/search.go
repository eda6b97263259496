package search

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rideboard/site/db"
)

// VisitorSearch is one logged search term
type VisitorSearch struct {
	ID          int
	VisitorID   sql.NullString
	QueryString string
	CreatedAt   time.Time
}

// TopSearch represents a popular search term with its count
type TopSearch struct {
	QueryString string
	Count       int
}

// SaveSearch logs a term typed into the listing search box. Blank terms are
// not logged.
func SaveSearch(visitorID sql.NullString, queryString string) error {
	queryString = strings.TrimSpace(queryString)
	if queryString == "" {
		return nil
	}
	_, err := db.Exec("INSERT INTO SearchLog (visitor_id, query_string, created_at) VALUES (?, ?, ?)",
		visitorID, queryString, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		log.Printf("[search] Error saving search: %v", err)
		return err
	}
	return nil
}

// GetRecentSearches returns a visitor's latest terms, newest first
func GetRecentSearches(visitorID string, limit int) ([]VisitorSearch, error) {
	rows, err := db.Query("SELECT id, visitor_id, query_string, created_at FROM SearchLog WHERE visitor_id = ? ORDER BY created_at DESC LIMIT ?", visitorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []VisitorSearch
	for rows.Next() {
		var s VisitorSearch
		var createdAt string
		if err := rows.Scan(&s.ID, &s.VisitorID, &s.QueryString, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

// DeleteSearch deletes a specific search entry owned by the visitor
func DeleteSearch(searchID int, visitorID string) error {
	_, err := db.Exec("DELETE FROM SearchLog WHERE id = ? AND visitor_id = ?", searchID, visitorID)
	if err != nil {
		log.Printf("[search] Error deleting search: %v", err)
		return err
	}
	return nil
}

// DeleteAllSearches deletes all search entries for a visitor
func DeleteAllSearches(visitorID string) error {
	_, err := db.Exec("DELETE FROM SearchLog WHERE visitor_id = ?", visitorID)
	if err != nil {
		log.Printf("[search] Error deleting all searches: %v", err)
		return err
	}
	return nil
}

// GetTopSearches returns the most frequent terms across all visitors
func GetTopSearches(limit int) ([]TopSearch, error) {
	rows, err := db.Query("SELECT query_string, COUNT(*) AS count FROM SearchLog GROUP BY query_string ORDER BY count DESC, query_string LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []TopSearch
	for rows.Next() {
		var t TopSearch
		if err := rows.Scan(&t.QueryString, &t.Count); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}
