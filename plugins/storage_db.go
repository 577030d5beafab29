package plugins

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const inventorySchema = `CREATE TABLE IF NOT EXISTS inventories (
	owner   TEXT PRIMARY KEY,
	codec   TEXT NOT NULL,
	data    BLOB NOT NULL,
	updated INTEGER NOT NULL
)`

type inventoryDB struct {
	db *sql.DB
}

func openInventoryDB(file string) (*inventoryDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("open %v (%w)", file, err)
	}
	if _, err := db.Exec(inventorySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create inventory table in %v (%w)", file, err)
	}
	return &inventoryDB{db: db}, nil
}

func (i *inventoryDB) put(owner, codec string, data []byte) error {
	_, err := i.db.Exec(`INSERT INTO inventories (owner, codec, data, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET codec = excluded.codec, data = excluded.data, updated = excluded.updated`,
		owner, codec, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store inventory of %v: %w", owner, err)
	}
	return nil
}

func (i *inventoryDB) get(owner string) (codec string, data []byte, ok bool, err error) {
	err = i.db.QueryRow(`SELECT codec, data FROM inventories WHERE owner = ?`, owner).Scan(&codec, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("read inventory of %v: %w", owner, err)
	}
	return codec, data, true, nil
}

func (i *inventoryDB) owners() ([]string, error) {
	rows, err := i.db.Query(`SELECT owner FROM inventories ORDER BY owner`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func (i *inventoryDB) Close() error {
	return i.db.Close()
}
