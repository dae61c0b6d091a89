package draft

import (
	"cmp"
	"slices"
)

type revealTarget struct {
	kind   Kind
	player Player
}

// RevealBans matches reveal events against the hidden-ban placeholders they
// disclose. Placeholders fill in the order the bans were originally placed:
// each (kind, player) pair keeps an occurrence counter over the placeholder
// positions captured when the pair is first touched, so repeated or
// out-of-order reveal batches land in stable slots. An event whose
// (optionId, sequence) key was already applied is a no-op, and a reveal with
// no placeholder left to fill is skipped silently — both are expected when
// the source redelivers a full reveal batch.
func (b Board) RevealBans(events []Event, catalog []Option) Board {
	next := b.clone()

	batch := slices.Clone(events)
	slices.SortStableFunc(batch, func(x, y Event) int {
		return cmp.Compare(x.Sequence, y.Sequence)
	})

	positions := map[revealTarget][]int{}
	used := map[revealTarget]int{}

	for _, ev := range batch {
		if ev.OptionID == "" || ev.OptionID == HiddenBanID {
			continue
		}

		kind := KindOf(ev.OptionID)
		st := next.stateFor(kind)
		if st.isRevealed(ev.revealKey()) {
			continue
		}

		list := st.bansFor(ev.Player)
		if list == nil {
			continue
		}

		target := revealTarget{kind: kind, player: ev.Player}
		if _, ok := positions[target]; !ok {
			positions[target] = placeholderIndices(*list)
		}
		n := used[target]
		if n >= len(positions[target]) {
			// All placeholders for this player already filled.
			continue
		}
		idx := positions[target][n]

		name := ResolveName(ev.OptionID, catalog)
		(*list)[idx] = name
		used[target] = n + 1
		st.markRevealed(ev.revealKey())

		next.Last = &LastAction{
			Item:      name,
			ItemType:  kind,
			Action:    actionReveal,
			Player:    ev.Player,
			SlotIndex: idx,
			Timestamp: nowMillis(),
		}
	}

	return next
}

func placeholderIndices(list []string) []int {
	var idxs []int
	for i, v := range list {
		if v == HiddenBanName {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
