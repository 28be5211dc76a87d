package registration

import "github.com/porsenia/sportreg/internal/catalog"

// teamMin resolves the roster floor for a beregu category.
func teamMin(cat catalog.SportCategory) int {
	if cat.MinParticipants > 0 {
		return cat.MinParticipants
	}

	return catalog.DefaultTeamMin
}

// ValidateEntry checks the cardinality contract the category type imposes
// before an entry may be appended.
//
// tunggal: exactly one fully-filled participant.
// ganda:   exactly two fully-filled participants; a third is a hard rejection,
//          not a truncation.
// beregu:  team-level required fields, member count within [min, max] (floor
//          from the category or the default of 6), every member with the
//          minimum identity set.
func ValidateEntry(cat catalog.SportCategory, participants []Participant, team *Team) error {
	switch cat.Type {
	case catalog.TypeTunggal:
		if len(participants) != 1 {
			return ErrParticipantCount
		}

		if !participants[0].Complete() {
			return ErrIncompleteParticipant
		}

	case catalog.TypeGanda:
		if len(participants) != 2 {
			return ErrParticipantCount
		}

		for _, p := range participants {
			if !p.Complete() {
				return ErrIncompleteParticipant
			}
		}

	case catalog.TypeBeregu:
		if team == nil {
			return ErrTeamRequired
		}

		if !team.complete() {
			return ErrTeamIncomplete
		}

		if len(team.Members) < teamMin(cat) {
			return ErrTeamTooSmall
		}

		if cat.MaxParticipants > 0 && len(team.Members) > cat.MaxParticipants {
			return ErrTeamTooLarge
		}

		for _, m := range team.Members {
			if !m.Complete() {
				return ErrTeamIncomplete
			}
		}

	default:
		return ErrUnknownCategory
	}

	return nil
}

// AddEntry validates and appends one entry, assigning the next dense entry
// number (current count + 1).
func (ce *CategoryEntry) AddEntry(cat catalog.SportCategory, participants []Participant, team *Team) error {
	if err := ValidateEntry(cat, participants, team); err != nil {
		return err
	}

	entry := Entry{
		EntryNumber:  len(ce.Entries) + 1,
		Participants: participants,
		Team:         team,
	}

	ce.Entries = append(ce.Entries, entry)

	return nil
}

// RemoveEntry deletes the entry with the given number and renumbers the
// remainder to a dense 1..N sequence, preserving relative order.
func (ce *CategoryEntry) RemoveEntry(entryNumber int) error {
	idx := -1

	for i, e := range ce.Entries {
		if e.EntryNumber == entryNumber {
			idx = i
			break
		}
	}

	if idx == -1 {
		return ErrEntryNotFound
	}

	ce.Entries = append(ce.Entries[:idx], ce.Entries[idx+1:]...)

	for i := range ce.Entries {
		ce.Entries[i].EntryNumber = i + 1
	}

	return nil
}

// BuildCategoryEntries expands a step-1 cart into step-2 buckets: one bucket
// per distinct (sport, category) pair, first-seen order. Education-level and
// technical-parameter variants of the same category land in the same bucket;
// that mirrors the entry-taking stage of the handbook flow.
func BuildCategoryEntries(selections []CartSelection) []CategoryEntry {
	out := make([]CategoryEntry, 0, len(selections))
	seen := make(map[string]bool, len(selections))

	for _, sel := range selections {
		bucket := sel.SportID + "/" + sel.CategoryID

		if seen[bucket] {
			continue
		}
		seen[bucket] = true

		var price int64
		if cat, ok := catalog.CategoryByID(sel.CategoryID); ok {
			price = cat.PricePerEntry
		}

		out = append(out, CategoryEntry{
			SportID:       sel.SportID,
			CategoryID:    sel.CategoryID,
			PricePerEntry: price,
			Entries:       []Entry{},
		})
	}

	return out
}

// TotalEntries counts entries across all buckets.
func TotalEntries(entries []CategoryEntry) int {
	total := 0

	for _, ce := range entries {
		total += len(ce.Entries)
	}

	return total
}
