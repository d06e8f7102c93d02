package players

import (
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/gommon/log"
)

var ErrMissingID = errors.New("player must have an id")

type Player struct {
	ID       string
	Callsign string
	JoinedAt time.Time
	Metadata map[string]string
}

// Manager is the roster of players in a session. It holds at most
// MaxPlayers; shrinking the limit drops the least recently touched
// players first.
type Manager struct {
	maxPlayers int
	players    *lru.Cache[string, Player]
}

func NewManager(maxPlayers int, initial ...Player) *Manager {
	if maxPlayers <= 0 {
		maxPlayers = 1
	}
	cache, err := lru.New[string, Player](maxPlayers)
	if err != nil {
		// Only returned for a non-positive size, which is excluded above.
		panic(err)
	}
	m := &Manager{maxPlayers: maxPlayers, players: cache}
	for _, p := range initial {
		if p.ID == "" {
			continue
		}
		if p.JoinedAt.IsZero() {
			p.JoinedAt = time.Now()
		}
		m.players.Add(p.ID, clonePlayer(p))
	}
	return m
}

func NewPlayerID() string {
	return uuid.NewString()
}

func (m *Manager) SetMaxPlayers(limit int) int {
	if limit <= 0 {
		return m.maxPlayers
	}
	m.maxPlayers = limit
	if evicted := m.players.Resize(limit); evicted > 0 {
		log.Infof("players: dropped %d players for new limit %d", evicted, limit)
	}
	return m.maxPlayers
}

func (m *Manager) MaxPlayers() int { return m.maxPlayers }

func (m *Manager) IsSlotAvailable() bool {
	return m.players.Len() < m.maxPlayers
}

// Join adds a player. It returns false without error when the roster is
// full.
func (m *Manager) Join(id, callsign string, metadata map[string]string) (Player, bool, error) {
	if id == "" {
		return Player{}, false, ErrMissingID
	}
	if !m.players.Contains(id) && !m.IsSlotAvailable() {
		return Player{}, false, nil
	}
	p := Player{
		ID:       id,
		Callsign: strings.TrimSpace(callsign),
		JoinedAt: time.Now(),
		Metadata: maps.Clone(metadata),
	}
	if p.Metadata == nil {
		p.Metadata = map[string]string{}
	}
	m.players.Add(id, p)
	log.Debugf("players: %s joined as %q", id, p.Callsign)
	return clonePlayer(p), true, nil
}

func (m *Manager) Leave(id string) bool {
	if id == "" {
		return false
	}
	return m.players.Remove(id)
}

func (m *Manager) Get(id string) (Player, bool) {
	p, ok := m.players.Peek(id)
	if !ok {
		return Player{}, false
	}
	return clonePlayer(p), true
}

// Update applies fn to a copy of the player and stores the result.
func (m *Manager) Update(id string, fn func(p *Player)) (Player, bool) {
	p, ok := m.players.Peek(id)
	if !ok {
		return Player{}, false
	}
	p = clonePlayer(p)
	fn(&p)
	p.ID = id
	m.players.Add(id, p)
	return clonePlayer(p), true
}

// List returns the players, least recently touched first.
func (m *Manager) List() []Player {
	vals := m.players.Values()
	out := make([]Player, 0, len(vals))
	for _, p := range vals {
		out = append(out, clonePlayer(p))
	}
	return out
}

func (m *Manager) Reset() {
	m.players.Purge()
}

func clonePlayer(p Player) Player {
	p.Metadata = maps.Clone(p.Metadata)
	return p
}
