package domain

type MoodLabel string

const (
	MoodHappy      MoodLabel = "happy"
	MoodSad        MoodLabel = "sad"
	MoodCalm       MoodLabel = "calm"
	MoodEnergetic  MoodLabel = "energetic"
	MoodRomantic   MoodLabel = "romantic"
	MoodNostalgic  MoodLabel = "nostalgic"
	MoodHopeful    MoodLabel = "hopeful"
	MoodMelancholy MoodLabel = "melancholy"
	MoodExcited    MoodLabel = "excited"
	MoodPeaceful   MoodLabel = "peaceful"
	MoodAngry      MoodLabel = "angry"
	MoodDreamy     MoodLabel = "dreamy"
)

// DefaultMood is substituted whenever a classification cannot be trusted.
const DefaultMood = MoodCalm

// AllMoods lists the closed label set in a stable order.
var AllMoods = []MoodLabel{
	MoodHappy, MoodSad, MoodCalm, MoodEnergetic, MoodRomantic, MoodNostalgic,
	MoodHopeful, MoodMelancholy, MoodExcited, MoodPeaceful, MoodAngry, MoodDreamy,
}

// ParseMoodLabel matches s exactly against the label set.
func ParseMoodLabel(s string) (MoodLabel, bool) {
	for _, m := range AllMoods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

var moodSearchPhrases = map[MoodLabel][]string{
	MoodHappy:      {"happy songs", "feel good hits", "upbeat pop"},
	MoodSad:        {"sad songs", "heartbreak ballads"},
	MoodCalm:       {"calm acoustic", "chill vibes", "soft piano"},
	MoodEnergetic:  {"energetic workout", "high energy dance"},
	MoodRomantic:   {"romantic love songs", "slow dance"},
	MoodNostalgic:  {"nostalgic classics", "throwback hits"},
	MoodHopeful:    {"hopeful uplifting", "inspiring anthems"},
	MoodMelancholy: {"melancholy indie", "rainy day songs"},
	MoodExcited:    {"excited party", "celebration anthems"},
	MoodPeaceful:   {"peaceful ambient", "nature sounds relax"},
	MoodAngry:      {"angry rock", "rage metal"},
	MoodDreamy:     {"dreamy dream pop", "ethereal shoegaze", "lofi dreams"},
}

// SearchPhrases returns the keyword queries used when saved collections
// give no usable candidates for the mood.
func (m MoodLabel) SearchPhrases() []string {
	if p, ok := moodSearchPhrases[m]; ok {
		return p
	}
	return []string{string(m) + " songs", string(m) + " music"}
}
