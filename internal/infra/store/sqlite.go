package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/app/catalog"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS states (
	name     TEXT PRIMARY KEY,
	next_id  INTEGER NOT NULL,
	saved_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS artists (
	state    TEXT NOT NULL,
	position INTEGER NOT NULL,
	id       INTEGER NOT NULL,
	name     TEXT NOT NULL,
	country  TEXT NOT NULL,
	PRIMARY KEY (state, id)
);
CREATE TABLE IF NOT EXISTS albums (
	state     TEXT NOT NULL,
	artist_id INTEGER NOT NULL,
	position  INTEGER NOT NULL,
	name      TEXT NOT NULL,
	year      INTEGER NOT NULL,
	PRIMARY KEY (state, artist_id, position)
);
CREATE TABLE IF NOT EXISTS tracks (
	state          TEXT NOT NULL,
	id             TEXT NOT NULL,
	artist_id      INTEGER NOT NULL,
	album_position INTEGER NOT NULL,
	position       INTEGER NOT NULL,
	name           TEXT NOT NULL,
	duration       INTEGER NOT NULL,
	genre          TEXT NOT NULL,
	lyrics         TEXT NOT NULL,
	PRIMARY KEY (state, id)
);
CREATE TABLE IF NOT EXISTS playlists (
	state        TEXT NOT NULL,
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL,
	max_duration INTEGER NOT NULL,
	PRIMARY KEY (state, position)
);
CREATE TABLE IF NOT EXISTS playlist_tracks (
	state             TEXT NOT NULL,
	playlist_position INTEGER NOT NULL,
	position          INTEGER NOT NULL,
	track_id          TEXT NOT NULL,
	PRIMARY KEY (state, playlist_position, position)
);
`

var stateTables = []string{"states", "artists", "albums", "tracks", "playlists", "playlist_tracks"}

// SQLiteStore keeps snapshots in a SQLite database. Each save replaces every row
// of the named state inside a single transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) unqfy.db inside dir. Pass MemoryDSN for an
// in-memory database.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	dsn := MemoryDSN
	if dir != MemoryDSN {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create storage directory")
		}
		dsn = filepath.Join(dir, "unqfy.db")
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// A single connection keeps in-memory databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}

	zlog.Info().Msgf("SQLite store initialized: dsn=%s", dsn)
	return &SQLiteStore{db: db}, nil
}

// Save replaces the state stored under name with the snapshot.
func (s *SQLiteStore) Save(ctx context.Context, name string, snap *catalog.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, table := range stateTables {
		column := "state"
		if table == "states" {
			column = "name"
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+column+" = ?", name); err != nil {
			return errors.Wrapf(err, "failed to clear %s", table)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO states (name, next_id, saved_at) VALUES (?, ?, ?)",
		name, snap.NextID, time.Now(),
	); err != nil {
		return errors.Wrap(err, "failed to insert state")
	}

	for i, a := range snap.Artists {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO artists (state, position, id, name, country) VALUES (?, ?, ?, ?, ?)",
			name, i, a.ID, a.Name, a.Country,
		); err != nil {
			return errors.Wrapf(err, "failed to insert artist %d", a.ID)
		}
		for j, al := range a.Albums {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO albums (state, artist_id, position, name, year) VALUES (?, ?, ?, ?, ?)",
				name, a.ID, j, al.Name, al.Year,
			); err != nil {
				return errors.Wrapf(err, "failed to insert album %s", al.Name)
			}
			for k, t := range al.Tracks {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO tracks (state, id, artist_id, album_position, position, name, duration, genre, lyrics)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					name, t.ID, a.ID, j, k, t.Name, t.Duration, t.Genre, t.Lyrics,
				); err != nil {
					return errors.Wrapf(err, "failed to insert track %s", t.Name)
				}
			}
		}
	}

	for i, p := range snap.Playlists {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO playlists (state, position, name, max_duration) VALUES (?, ?, ?, ?)",
			name, i, p.Name, p.MaxDuration,
		); err != nil {
			return errors.Wrapf(err, "failed to insert playlist %s", p.Name)
		}
		for j, id := range p.TrackIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO playlist_tracks (state, playlist_position, position, track_id) VALUES (?, ?, ?, ?)",
				name, i, j, id,
			); err != nil {
				return errors.Wrapf(err, "failed to insert playlist track %s", id)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit snapshot")
	}

	zlog.Debug().Msgf("saved catalog: state=%s artists=%d playlists=%d", name, len(snap.Artists), len(snap.Playlists))
	return nil
}

// Load reads the state stored under name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*catalog.Snapshot, error) {
	snap := &catalog.Snapshot{
		Artists:   make([]catalog.ArtistRecord, 0),
		Playlists: make([]catalog.PlaylistRecord, 0),
	}

	err := s.db.QueryRowContext(ctx, "SELECT next_id FROM states WHERE name = ?", name).Scan(&snap.NextID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoState
		}
		return nil, errors.Wrap(err, "failed to read state")
	}

	if err := s.loadArtists(ctx, name, snap); err != nil {
		return nil, err
	}
	if err := s.loadPlaylists(ctx, name, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *SQLiteStore) loadArtists(ctx context.Context, name string, snap *catalog.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, country FROM artists WHERE state = ? ORDER BY position", name)
	if err != nil {
		return errors.Wrap(err, "failed to query artists")
	}
	index := make(map[int]int)
	for rows.Next() {
		a := catalog.ArtistRecord{Albums: make([]catalog.AlbumRecord, 0)}
		if err := rows.Scan(&a.ID, &a.Name, &a.Country); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan artist")
		}
		index[a.ID] = len(snap.Artists)
		snap.Artists = append(snap.Artists, a)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx,
		"SELECT artist_id, name, year FROM albums WHERE state = ? ORDER BY artist_id, position", name)
	if err != nil {
		return errors.Wrap(err, "failed to query albums")
	}
	for rows.Next() {
		var artistID int
		al := catalog.AlbumRecord{Tracks: make([]catalog.TrackRecord, 0)}
		if err := rows.Scan(&artistID, &al.Name, &al.Year); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan album")
		}
		i, ok := index[artistID]
		if !ok {
			continue
		}
		snap.Artists[i].Albums = append(snap.Artists[i].Albums, al)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, artist_id, album_position, name, duration, genre, lyrics FROM tracks
		WHERE state = ? ORDER BY artist_id, album_position, position`, name)
	if err != nil {
		return errors.Wrap(err, "failed to query tracks")
	}
	for rows.Next() {
		var artistID, albumPos int
		var t catalog.TrackRecord
		if err := rows.Scan(&t.ID, &artistID, &albumPos, &t.Name, &t.Duration, &t.Genre, &t.Lyrics); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan track")
		}
		i, ok := index[artistID]
		if !ok || albumPos >= len(snap.Artists[i].Albums) {
			continue
		}
		album := &snap.Artists[i].Albums[albumPos]
		album.Tracks = append(album.Tracks, t)
	}
	return closeRows(rows)
}

func (s *SQLiteStore) loadPlaylists(ctx context.Context, name string, snap *catalog.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, max_duration FROM playlists WHERE state = ? ORDER BY position", name)
	if err != nil {
		return errors.Wrap(err, "failed to query playlists")
	}
	for rows.Next() {
		p := catalog.PlaylistRecord{TrackIDs: make([]string, 0)}
		if err := rows.Scan(&p.Name, &p.MaxDuration); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan playlist")
		}
		snap.Playlists = append(snap.Playlists, p)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT playlist_position, track_id FROM playlist_tracks
		WHERE state = ? ORDER BY playlist_position, position`, name)
	if err != nil {
		return errors.Wrap(err, "failed to query playlist tracks")
	}
	for rows.Next() {
		var pos int
		var id string
		if err := rows.Scan(&pos, &id); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan playlist track")
		}
		if pos >= len(snap.Playlists) {
			continue
		}
		snap.Playlists[pos].TrackIDs = append(snap.Playlists[pos].TrackIDs, id)
	}
	return closeRows(rows)
}

// closeRows closes rows and reports any iteration error.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return errors.Wrap(err, "failed to iterate rows")
	}
	return rows.Close()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
