// Package geoip resolves client addresses to a country and city using a
// MaxMind GeoLite2 City (or Country) database.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// Lookup is safe for concurrent use. A Lookup without a database returns
// empty results for every address.
type Lookup struct {
	db        *maxminddb.Reader
	dbPath    string
	dbModTime time.Time
	mu        sync.RWMutex
}

// geoRecord matches the subset of the GeoLite2-City layout we read. Country
// databases simply leave City empty.
type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
}

// Open loads the database at dbPath. An empty path disables lookups.
func Open(dbPath string) (*Lookup, error) {
	g := &Lookup{dbPath: dbPath}
	if dbPath == "" {
		return g, nil
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

// Caller must hold g.mu for writing, or own g exclusively.
func (g *Lookup) load() error {
	info, err := os.Stat(g.dbPath)
	if err != nil {
		return fmt.Errorf("GeoIP database stat error: %w", err)
	}
	if g.db != nil && info.ModTime().Equal(g.dbModTime) {
		return nil
	}

	db, err := maxminddb.Open(g.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open GeoIP database: %w", err)
	}
	if g.db != nil {
		_ = g.db.Close()
	}
	g.db = db
	g.dbModTime = info.ModTime()
	return nil
}

// Reload swaps in the database file if it changed on disk.
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dbPath == "" {
		return nil
	}
	return g.load()
}

// Enabled reports whether a database is loaded.
func (g *Lookup) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.db != nil
}

// Locate returns the ISO country code and English city name for ip. Private,
// loopback and unparseable addresses resolve to empty strings.
func (g *Lookup) Locate(ip string) (country, city string) {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() {
		return "", ""
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return "", ""
	}

	var record geoRecord
	if err := g.db.Lookup(parsed, &record); err != nil {
		return "", ""
	}
	return record.Country.ISOCode, record.City.Names["en"]
}

func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}
