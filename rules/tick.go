package rules

import (
	log "github.com/sirupsen/logrus"
)

// Tick runs the match one tick with the input captured for it. It returns the
// result on the tick the match ends and nil otherwise.
func (m *Match) Tick(keys KeyState) (*MatchResult, error) {
	if m.Status != MatchStatusPlaying {
		return nil, ErrMatchFinished
	}
	m.Turn++
	m.eaten = m.eaten[:0]
	s1, s2 := m.Snakes[0], m.Snakes[1]

	// 1. steer
	// 2. expire boosts
	// 3. move, snake one first
	s1.HandleInput(keys)
	s2.HandleInput(keys)
	s1.Update()
	s2.Update()
	s1.Move()
	s2.Move()

	// 4. check for death
	// 5. finish on the first death found
	if du := checkForDeath(m.Snakes); du != nil {
		return m.finish(du), nil
	}

	// 6. fruit
	m.consumeFruit()
	return nil, nil
}

func (m *Match) finish(du *deathUpdate) *MatchResult {
	winner, loser := m.Snakes[du.Winner], m.Snakes[du.Loser]
	m.result = &MatchResult{
		MatchID:     m.ID,
		Turn:        m.Turn,
		Winner:      winner.Name,
		Loser:       loser.Name,
		WinnerScore: winner.Score,
		LoserScore:  loser.Score,
		WinnerSlot:  du.Winner,
		Cause:       du.Cause,
	}
	m.Status = MatchStatusFinished
	log.WithFields(log.Fields{
		"MatchID": m.ID,
		"Turn":    m.Turn,
		"Winner":  winner.Name,
		"Loser":   loser.Name,
		"Cause":   du.Cause,
	}).Info("match finished")
	r := *m.result
	return &r
}

// consumeFruit hands every fruit under a head to that snake, snake one first,
// and replaces it in place. Replacements are not checked until next tick.
func (m *Match) consumeFruit() {
	for i, f := range m.Fruits {
		slot := -1
		for j, s := range m.Snakes {
			if s.Head().Equal(f.Position) {
				slot = j
				break
			}
		}
		if slot < 0 {
			continue
		}
		s := m.Snakes[slot]
		f.Effect(s, m.rand)
		m.eaten = append(m.eaten, Consumption{Slot: slot, Snake: s.Name, Fruit: f})
		m.Fruits[i] = SpawnFruit(m.Grid, m.rand)
		log.WithFields(log.Fields{
			"MatchID": m.ID,
			"Turn":    m.Turn,
			"Name":    s.Name,
			"Fruit":   f.Type,
			"Score":   s.Score,
		}).Debug("snake ate")
	}
}
