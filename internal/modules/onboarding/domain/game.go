package domain

// RNG is the uniform source behind the game pick. Intn returns [0, n).
type RNG interface {
	Intn(n int) int
}

type GameKind int

const (
	GameNone GameKind = iota
	GameSpin
	GameScratch
)

// PlayableGames is the set playGame draws from, uniformly.
var PlayableGames = [...]GameKind{GameSpin, GameScratch}

func (k GameKind) String() string {
	switch k {
	case GameSpin:
		return "spin"
	case GameScratch:
		return "scratch"
	default:
		return "none"
	}
}

// PickGame draws one playable game. Each call is independent of the last.
func PickGame(rng RNG) GameKind {
	return PlayableGames[rng.Intn(len(PlayableGames))]
}
