package parse

import (
	"strconv"

	"github.com/randomizedcoder/sorteio/internal/draw"
)

// FixtureAuthors and FixtureTexts seed FakeComments.
var (
	FixtureAuthors = []string{
		"ana", "bruno", "carla", "diego", "elisa",
		"felipe", "gabi", "hugo", "iris", "joao",
	}
	FixtureTexts = []string{
		"I want to win!",
		"Count me in",
		"Tagging my friends",
		"Amazing giveaway",
		"Good luck everyone",
		"Following and sharing",
	}
)

// FakeComments generates n simulated comments. It stands in for a social
// media comment import and never touches the network. Authors carry a
// numeric suffix so that large fixtures still have mostly distinct handles.
func FakeComments(rng draw.Source, n int) []Comment {
	if n <= 0 {
		return []Comment{}
	}
	out := make([]Comment, n)
	for i := range out {
		out[i] = Comment{
			Author: FixtureAuthors[rng.IntN(len(FixtureAuthors))] + strconv.Itoa(rng.IntN(1000)),
			Text:   FixtureTexts[rng.IntN(len(FixtureTexts))],
		}
	}
	return out
}
