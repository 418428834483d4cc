package game

import "math/rand"

// Branch is a midground decoration hanging off one side of the screen.
type Branch struct {
	Y     float64
	Right bool
}

// Speck is a background decoration.
type Speck struct {
	X, Y float64
}

const (
	backgroundTiles   = 20
	backgroundSpacing = 64.0
	specksPerTile     = 3
)

// scenery is generated once per reset from the session seed.
type scenery struct {
	branches []Branch
	specks   []Speck
}

func newScenery(seed int64, width, scale float64, branches int, spacing float64) scenery {
	rng := rand.New(rand.NewSource(seed))

	var sc scenery
	for i := 0; i < branches; i++ {
		sc.branches = append(sc.branches, Branch{
			Y:     spacing * float64(i),
			Right: rng.Intn(2) > 0,
		})
	}
	for i := 0; i < backgroundTiles; i++ {
		base := backgroundSpacing * scale * float64(i)
		for j := 0; j < specksPerTile; j++ {
			sc.specks = append(sc.specks, Speck{
				X: rng.Float64() * width,
				Y: base + rng.Float64()*backgroundSpacing*scale,
			})
		}
	}
	return sc
}
