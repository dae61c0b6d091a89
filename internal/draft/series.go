package draft

import "slices"

// Game is one best-of-N slot. Civ and map fields are derived from the pick
// lists; winner and visibility are caster-controlled.
type Game struct {
	HostCiv  string `json:"hostCiv,omitempty"`
	GuestCiv string `json:"guestCiv,omitempty"`
	Map      string `json:"map,omitempty"`
	Winner   string `json:"winner,omitempty"`
	Visible  bool   `json:"isVisible"`
}

type Series struct {
	Format string
	Games  []Game
}

func (s Series) clone() Series {
	return Series{Format: s.Format, Games: slices.Clone(s.Games)}
}

func seriesLength(format string) int {
	switch format {
	case "bo1":
		return 1
	case "bo3":
		return 3
	case "bo5":
		return 5
	case "bo7":
		return 7
	default:
		return 0
	}
}

// SetSeriesFormat sizes the game slots for the given format ("bo1".."bo7",
// anything else clears the series) and re-derives their assignments from the
// current pick lists.
func (b Board) SetSeriesFormat(format string) Board {
	next := b.clone()
	n := seriesLength(format)
	if n == 0 {
		next.Series = Series{}
		return next
	}
	next.Series.Format = format
	next.Series.Games = make([]Game, n)
	for i := range next.Series.Games {
		next.Series.Games[i].Visible = true
	}
	next.rederiveSeries()
	return next
}

// SetGameWinner records the winner ("HOST", "GUEST" or "" to clear) of slot i.
func (b Board) SetGameWinner(i int, winner string) Board {
	next := b.clone()
	if i >= 0 && i < len(next.Series.Games) {
		next.Series.Games[i].Winner = winner
	}
	return next
}

// ToggleGameVisibility flips whether slot i renders in the series overview.
func (b Board) ToggleGameVisibility(i int) Board {
	next := b.clone()
	if i >= 0 && i < len(next.Series.Games) {
		next.Series.Games[i].Visible = !next.Series.Games[i].Visible
	}
	return next
}

// UpdateGame is the caster's manual override for a single slot field.
func (b Board) UpdateGame(i int, field, value string) Board {
	next := b.clone()
	if i < 0 || i >= len(next.Series.Games) {
		return next
	}
	g := &next.Series.Games[i]
	switch field {
	case "hostCiv":
		g.HostCiv = value
	case "guestCiv":
		g.GuestCiv = value
	case "map":
		g.Map = value
	case "winner":
		g.Winner = value
	}
	return next
}

// rederiveSeries recomputes slot assignments from the pick lists, preserving
// winners and visibility. Civs pair up by pick index. Player map picks fill
// slots 0..N-2 in alternating pick order; the final slot belongs to the
// decider (the NONE pick) and falls back to a leftover player pick when the
// draft has no decider.
func (b *Board) rederiveSeries() {
	n := len(b.Series.Games)
	if n == 0 {
		return
	}

	for i := range b.Series.Games {
		g := &b.Series.Games[i]
		g.HostCiv, g.GuestCiv, g.Map = "", "", ""
	}

	for i, name := range b.Civ.PicksHost {
		if i < n {
			b.Series.Games[i].HostCiv = name
		}
	}
	for i, name := range b.Civ.PicksGuest {
		if i < n {
			b.Series.Games[i].GuestCiv = name
		}
	}

	merged := interleave(b.Map.PicksHost, b.Map.PicksGuest)
	for k, name := range merged {
		if k < n-1 {
			b.Series.Games[k].Map = name
		}
	}

	last := &b.Series.Games[n-1]
	switch {
	case len(b.Map.PicksGlobal) > 0:
		last.Map = b.Map.PicksGlobal[0]
		for _, name := range b.Map.PicksGlobal[1:] {
			for i := range b.Series.Games {
				if b.Series.Games[i].Map == "" {
					b.Series.Games[i].Map = name
					break
				}
			}
		}
	case len(merged) >= n:
		last.Map = merged[n-1]
	}
}

func interleave(host, guest []string) []string {
	out := make([]string, 0, len(host)+len(guest))
	for i := 0; i < len(host) || i < len(guest); i++ {
		if i < len(host) {
			out = append(out, host[i])
		}
		if i < len(guest) {
			out = append(out, guest[i])
		}
	}
	return out
}
