package session

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/spacedrep"
)

// Rand is the source of randomness for pool building. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand draws from the process-wide generator.
var DefaultRand Rand = globalRand{}

// Quota percentages. Mastered absorbs the rounding remainder.
const (
	WeakPct   = 50
	MiddlePct = 30
	NewPct    = 15
)

// Quotas splits n slots across tiers. The values always sum to n.
func Quotas(n int) map[mastery.Tier]int {
	if n < 0 {
		n = 0
	}
	weak := n * WeakPct / 100
	middle := n * MiddlePct / 100
	newQ := n * NewPct / 100
	return map[mastery.Tier]int{
		mastery.TierWeak:     weak,
		mastery.TierMiddle:   middle,
		mastery.TierNew:      newQ,
		mastery.TierMastered: n - weak - middle - newQ,
	}
}

// buckets groups candidate items by tier.
type buckets map[mastery.Tier][]*exercise.Item

// draw removes up to n random items from the tier's bucket.
func (b buckets) draw(tier mastery.Tier, n int, rng Rand) []*exercise.Item {
	var out []*exercise.Item
	for range n {
		cands := b[tier]
		if len(cands) == 0 {
			break
		}
		i := rng.IntN(len(cands))
		out = append(out, cands[i])
		cands[i] = cands[len(cands)-1]
		b[tier] = cands[:len(cands)-1]
	}
	return out
}

// fill runs one quota pass and returns the drawn items with the part of
// each tier's quota its bucket could not meet.
func (b buckets) fill(quotas map[mastery.Tier]int, rng Rand) ([]*exercise.Item, map[mastery.Tier]int) {
	var out []*exercise.Item
	unmet := make(map[mastery.Tier]int)
	for _, tier := range mastery.AllTiers {
		got := b.draw(tier, quotas[tier], rng)
		out = append(out, got...)
		if n := quotas[tier] - len(got); n > 0 {
			unmet[tier] = n
		}
	}
	return out, unmet
}

// fallback fills the unmet weak, middle and new quotas from these buckets.
// A quota the tier cannot meet moves to the next tier in priority order.
// The mastered share is left to top-up.
func (b buckets) fallback(unmet map[mastery.Tier]int, rng Rand) []*exercise.Item {
	var out []*exercise.Item
	carry := 0
	for _, tier := range []mastery.Tier{mastery.TierWeak, mastery.TierMiddle, mastery.TierNew} {
		want := unmet[tier] + carry
		got := b.draw(tier, want, rng)
		out = append(out, got...)
		carry = want - len(got)
	}
	return out
}

// topUp draws from any tier, in priority order, until n items are taken.
func (b buckets) topUp(n int, rng Rand) []*exercise.Item {
	var out []*exercise.Item
	for _, tier := range mastery.AllTiers {
		if len(out) >= n {
			break
		}
		out = append(out, b.draw(tier, n-len(out), rng)...)
	}
	return out
}

// BuildPool selects and orders the items for one practice session.
//
// Items are split into due and not-due partitions and bucketed by tier. A
// quota pass fills weak, middle, new and mastered slots from due items. The
// weak, middle and new slots it leaves empty are then offered to not-due
// items of the same tier, passing down the priority order when a tier has
// none. Due quotas are not moved between tiers. If the pool is still short,
// remaining candidates top it up in priority order, due first, so not-due
// mastered items come last. The result is shuffled so order does not reveal
// tier.
//
// The result length is min(targetSize, len(items)), or 0 if targetSize <= 0.
func BuildPool(items []*exercise.Item, targetSize int, now time.Time, rng Rand) []*exercise.Item {
	if targetSize <= 0 || len(items) == 0 {
		return nil
	}
	if rng == nil {
		rng = DefaultRand
	}
	target := min(targetSize, len(items))

	due, notDue := buckets{}, buckets{}
	for _, it := range items {
		tier := mastery.Classify(it.TimesAnswered, it.TimesCorrect)
		if spacedrep.IsDue(it, now) {
			due[tier] = append(due[tier], it)
		} else {
			notDue[tier] = append(notDue[tier], it)
		}
	}

	pool, unmet := due.fill(Quotas(target), rng)
	pool = append(pool, notDue.fallback(unmet, rng)...)
	if short := target - len(pool); short > 0 {
		pool = append(pool, due.topUp(short, rng)...)
	}
	if short := target - len(pool); short > 0 {
		pool = append(pool, notDue.topUp(short, rng)...)
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}
