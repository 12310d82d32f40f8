package puzzle

import "sync"

// maxSieve bounds the composite-number sieve; board sizes never need to
// exceed this range for any realistic difficulty.
const maxSieve = 100_000

var (
	compositesOnce sync.Once
	composites     []int
)

// sieveComposites returns the ascending list of composite numbers (not 1,
// not prime) up to maxSieve, computed once via a standard sieve of
// Eratosthenes.
func sieveComposites() []int {
	compositesOnce.Do(func() {
		isComposite := make([]bool, maxSieve+1)
		isPrime := make([]bool, maxSieve+1)
		for i := 2; i <= maxSieve; i++ {
			isPrime[i] = true
		}
		for i := 2; i*i <= maxSieve; i++ {
			if isPrime[i] {
				for j := i * i; j <= maxSieve; j += i {
					isPrime[j] = false
				}
			}
		}
		for i := 4; i <= maxSieve; i++ {
			if !isPrime[i] {
				isComposite[i] = true
			}
		}
		for i := 4; i <= maxSieve; i++ {
			if isComposite[i] {
				composites = append(composites, i)
			}
		}
	})
	return composites
}

// nthComposite returns the k-th composite number (1-indexed: k=1 -> 4,
// k=2 -> 6, k=3 -> 8, k=4 -> 9, ...), clamped to the largest available entry
// if k overflows the sieve range.
func nthComposite(k int) int {
	c := sieveComposites()
	if k < 1 {
		k = 1
	}
	if k > len(c) {
		k = len(c)
	}
	return c[k-1]
}
