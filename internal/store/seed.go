package store

// SeedTag is one entry of the preset tag vocabulary
type SeedTag struct {
	Name     string
	Category string
}

// DefaultSeedTags is the preset genre/instrument vocabulary for harder-styles
// libraries. It is seed data, not logic; callers may pass their own set.
var DefaultSeedTags = []SeedTag{
	{"Hardstyle", CategoryGenre},
	{"Rawstyle", CategoryGenre},
	{"Hardcore", CategoryGenre},
	{"Uptempo", CategoryGenre},
	{"Euphoric", CategoryGenre},
	{"Kick", CategoryInstrument},
	{"Lead", CategoryInstrument},
	{"Screech", CategoryInstrument},
	{"Atmosphere", CategoryInstrument},
	{"Vocal", CategoryInstrument},
	{"FX", CategoryInstrument},
}

// SeedTags inserts the given vocabulary, skipping names that already exist
func (s *Store) SeedTags(seed []SeedTag) error {
	for _, t := range seed {
		if _, err := s.EnsureTag(t.Name, t.Category); err != nil {
			return err
		}
	}
	return nil
}
