package roster

import (
	"math/rand"

	"activity-hub/internal/models"
)

// RandomStudent returns a uniformly random student, or false when the roster
// is empty or absent.
func (r *Roster) RandomStudent(rng *rand.Rand) (models.Student, bool) {
	if r.Len() == 0 {
		return nil, false
	}
	return r.Students[rng.Intn(len(r.Students))], true
}

// RandomStudents samples count distinct students without replacement. Each
// draw removes a uniformly random remaining index from a working copy, so the
// returned order is the draw order; min(count, roster size) records come back.
func (r *Roster) RandomStudents(rng *rand.Rand, count int) []models.Student {
	if r.Len() == 0 || count <= 0 {
		return nil
	}

	pool := make([]models.Student, len(r.Students))
	copy(pool, r.Students)

	if count > len(pool) {
		count = len(pool)
	}

	picked := make([]models.Student, 0, count)
	for len(picked) < count && len(pool) > 0 {
		i := rng.Intn(len(pool))
		picked = append(picked, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return picked
}

// Shuffle returns a uniformly shuffled copy of items (Fisher-Yates). The
// input is never modified.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
