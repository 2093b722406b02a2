package services

// Level is one display tier; thresholds are ascending and start at 0.
type Level struct {
	Name      string
	MinPoints int
}

var Levels = []Level{
	{Name: "Eco Novice", MinPoints: 0},
	{Name: "Eco Warrior", MinPoints: 50},
	{Name: "Eco Hero", MinPoints: 100},
	{Name: "Eco Legend", MinPoints: 200},
}

// LevelFor returns the name of the highest level whose threshold does not
// exceed points. Pure lookup, no failure modes.
func LevelFor(points int) string {
	level := Levels[0]
	for _, candidate := range Levels {
		if points >= candidate.MinPoints {
			level = candidate
		}
	}
	return level.Name
}
