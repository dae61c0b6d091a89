package draft

// State holds the derived lists for one draft kind (civ or map). The two
// kinds are independently owned and only combined at the broadcast boundary.
type State struct {
	PicksHost   []string
	PicksGuest  []string
	BansHost    []string
	BansGuest   []string
	PicksGlobal []string
	BansGlobal  []string

	// revealed grows monotonically; an event whose key is present is a no-op.
	revealed map[string]struct{}
}

func newState() State {
	return State{
		PicksHost:   []string{},
		PicksGuest:  []string{},
		BansHost:    []string{},
		BansGuest:   []string{},
		PicksGlobal: []string{},
		BansGlobal:  []string{},
		revealed:    map[string]struct{}{},
	}
}

func (s State) clone() State {
	c := State{
		PicksHost:   cloneList(s.PicksHost),
		PicksGuest:  cloneList(s.PicksGuest),
		BansHost:    cloneList(s.BansHost),
		BansGuest:   cloneList(s.BansGuest),
		PicksGlobal: cloneList(s.PicksGlobal),
		BansGlobal:  cloneList(s.BansGlobal),
		revealed:    make(map[string]struct{}, len(s.revealed)),
	}
	for k := range s.revealed {
		c.revealed[k] = struct{}{}
	}
	return c
}

// cloneList keeps empty lists non-nil so they serialize as [] rather than
// null; the overlay distinguishes the two.
func cloneList(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func (s *State) isRevealed(key string) bool {
	_, ok := s.revealed[key]
	return ok
}

func (s *State) markRevealed(key string) {
	s.revealed[key] = struct{}{}
}

// bansFor returns the ban list a reveal for this player targets,
// or nil when the player is unknown.
func (s *State) bansFor(p Player) *[]string {
	switch p {
	case PlayerHost:
		return &s.BansHost
	case PlayerGuest:
		return &s.BansGuest
	case PlayerNone:
		return &s.BansGlobal
	default:
		return nil
	}
}
