package session

import "github.com/overseerhq/caster-overlay-server/internal/draft"

// BroadcastState is the merged snapshot pushed to every overlay client and
// served to late joiners. The presentation layer binds to these field names
// directly; they must stay stable.
type BroadcastState struct {
	HostName   string  `json:"hostName"`
	GuestName  string  `json:"guestName"`
	Scores     Scores  `json:"scores"`
	HostColor  *string `json:"hostColor"`
	GuestColor *string `json:"guestColor"`
	HostFlag   *string `json:"hostFlag"`
	GuestFlag  *string `json:"guestFlag"`

	CivDraftID string `json:"civDraftId,omitempty"`
	MapDraftID string `json:"mapDraftId,omitempty"`

	CivPicksHost   []string `json:"civPicksHost"`
	CivBansHost    []string `json:"civBansHost"`
	CivPicksGuest  []string `json:"civPicksGuest"`
	CivBansGuest   []string `json:"civBansGuest"`
	CivPicksGlobal []string `json:"civPicksGlobal"`
	CivBansGlobal  []string `json:"civBansGlobal"`

	MapPicksHost   []string `json:"mapPicksHost"`
	MapBansHost    []string `json:"mapBansHost"`
	MapPicksGuest  []string `json:"mapPicksGuest"`
	MapBansGuest   []string `json:"mapBansGuest"`
	MapPicksGlobal []string `json:"mapPicksGlobal"`
	MapBansGlobal  []string `json:"mapBansGlobal"`

	BoxSeriesFormat string            `json:"boxSeriesFormat,omitempty"`
	BoxSeriesGames  []draft.Game      `json:"boxSeriesGames"`
	LastDraftAction *draft.LastAction `json:"lastDraftAction"`
}

type Scores struct {
	Host  int `json:"host"`
	Guest int `json:"guest"`
}

// Meta holds the pass-through display fields the reducer never interprets.
type Meta struct {
	HostName   string
	GuestName  string
	ScoreHost  int
	ScoreGuest int
	HostColor  *string
	GuestColor *string
	HostFlag   *string
	GuestFlag  *string
}

func defaultMeta() Meta {
	return Meta{HostName: "Player 1", GuestName: "Player 2"}
}

// mergeBroadcastState combines the two per-kind sub-states and the meta into
// the wire shape. Field-by-field on purpose: a partial civ or map payload
// must never blank the other kind's lists.
func mergeBroadcastState(b draft.Board, m Meta, civDraftID, mapDraftID string) BroadcastState {
	games := b.Series.Games
	if games == nil {
		games = []draft.Game{}
	}
	return BroadcastState{
		HostName:   m.HostName,
		GuestName:  m.GuestName,
		Scores:     Scores{Host: m.ScoreHost, Guest: m.ScoreGuest},
		HostColor:  m.HostColor,
		GuestColor: m.GuestColor,
		HostFlag:   m.HostFlag,
		GuestFlag:  m.GuestFlag,

		CivDraftID: civDraftID,
		MapDraftID: mapDraftID,

		CivPicksHost:   b.Civ.PicksHost,
		CivBansHost:    b.Civ.BansHost,
		CivPicksGuest:  b.Civ.PicksGuest,
		CivBansGuest:   b.Civ.BansGuest,
		CivPicksGlobal: b.Civ.PicksGlobal,
		CivBansGlobal:  b.Civ.BansGlobal,

		MapPicksHost:   b.Map.PicksHost,
		MapBansHost:    b.Map.BansHost,
		MapPicksGuest:  b.Map.PicksGuest,
		MapBansGuest:   b.Map.BansGuest,
		MapPicksGlobal: b.Map.PicksGlobal,
		MapBansGlobal:  b.Map.BansGlobal,

		BoxSeriesFormat: b.Series.Format,
		BoxSeriesGames:  games,
		LastDraftAction: b.Last,
	}
}
