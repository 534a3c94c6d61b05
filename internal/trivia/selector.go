package trivia

import "math/rand/v2"

// IntN returns a uniform integer in [0, n). rand.IntN satisfies it.
type IntN func(n int) int

// SeenSet builds the set of already served question ids.
func SeenSet(ids []int) map[int]struct{} {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen
}

// SelectNext draws uniformly among the pool members whose id is not in seen.
// It reports false once every member has been served, including for an empty
// pool. Ids in seen that are not part of the pool are ignored.
func SelectNext(pool []Question, seen map[int]struct{}, intn IntN) (Question, bool) {
	if intn == nil {
		intn = rand.IntN
	}
	candidates := make([]int, 0, len(pool))
	for i, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Question{}, false
	}
	return pool[candidates[intn(len(candidates))]], true
}
