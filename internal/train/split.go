package train

import (
	"math"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions row indices into train and test sets,
// holding out testSize of each label's rows. The split is deterministic
// for a given seed.
func StratifiedSplit(labels []string, testSize float64, seed int64) (trainRows, testRows []int) {
	byLabel := map[string][]int{}
	for i, label := range labels {
		byLabel[label] = append(byLabel[label], i)
	}

	ordered := make([]string, 0, len(byLabel))
	for label := range byLabel {
		ordered = append(ordered, label)
	}
	sort.Strings(ordered)

	rng := rand.New(rand.NewSource(seed))
	for _, label := range ordered {
		group := byLabel[label]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		nTest := int(math.Round(float64(len(group)) * testSize))
		if nTest == 0 && len(group) > 1 {
			nTest = 1
		}
		testRows = append(testRows, group[:nTest]...)
		trainRows = append(trainRows, group[nTest:]...)
	}

	sort.Ints(trainRows)
	sort.Ints(testRows)
	return trainRows, testRows
}
