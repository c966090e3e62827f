package quantization

import "fmt"

// MaxBuckets is the largest histogram Quartiles accepts.
const MaxBuckets = 256

// selector holds the working copy and the partition boundaries recorded while
// selecting the median. Both boundary lists are bounded by the bucket count:
// every recorded boundary is a distinct partition step that did not land on
// the median, and a range of n elements takes at most n-1 such steps.
type selector struct {
	buf      [MaxBuckets]uint32
	lowCuts  [MaxBuckets]int
	highCuts [MaxBuckets]int
	nLow     int
	nHigh    int
}

// Quartiles returns the values at ranks n/4-1, n/2-1 and 3n/4-1 of the sorted
// histogram, where n = len(buckets). n must be a positive multiple of 4 no
// larger than MaxBuckets. buckets is not modified.
func Quartiles(buckets []uint32) (q1, q2, q3 uint32) {
	n := len(buckets)
	if n == 0 || n > MaxBuckets || n%4 != 0 {
		panic(fmt.Sprintf("quantization: invalid bucket count %d", n))
	}

	var s selector
	work := s.buf[:n]
	copy(work, buckets)

	quarter := n / 4
	p1 := quarter - 1
	p2 := p1 + quarter
	p3 := p2 + quarter
	end := p3 + quarter

	low, high := 0, end
	for {
		pivot := partition(work, low, high)
		if pivot > p2 {
			high = pivot - 1
			s.highCuts[s.nHigh] = pivot
			s.nHigh++
		} else if pivot < p2 {
			low = pivot + 1
			s.lowCuts[s.nLow] = pivot
			s.nLow++
		} else {
			q2 = work[p2]
			break
		}
	}

	// p2 is in its final position, so p2-1 and p2+1 close both lists.
	s.lowCuts[s.nLow] = p2 - 1
	s.highCuts[s.nHigh] = p2 + 1

	low = 0
	for _, cut := range s.lowCuts[:s.nLow+1] {
		if cut > p1 {
			q1 = selectRank(work, low, cut, p1)
			break
		}
		if cut == p1 {
			q1 = work[p1]
			break
		}
		low = cut
	}

	high = end
	for _, cut := range s.highCuts[:s.nHigh+1] {
		if cut < p3 {
			q3 = selectRank(work, cut, high, p3)
			break
		}
		if cut == p3 {
			q3 = work[p3]
			break
		}
		high = cut
	}

	return q1, q2, q3
}

// selectRank quickselects rank inside buf[low:high+1].
func selectRank(buf []uint32, low, high, rank int) uint32 {
	for {
		pivot := partition(buf, low, high)
		switch {
		case pivot > rank:
			high = pivot - 1
		case pivot < rank:
			low = pivot + 1
		default:
			return buf[rank]
		}
	}
}

// partition partitions buf[low:high+1] around its middle element and returns
// the pivot's final index. Two-element ranges are ordered in place.
func partition(buf []uint32, low, high int) int {
	if low == high {
		return low
	}

	if low+1 == high {
		if buf[low] > buf[high] {
			buf[low], buf[high] = buf[high], buf[low]
		}
		return low
	}

	result, mid := low, (low+high)>>1
	val := buf[mid]
	buf[mid], buf[high] = buf[high], buf[mid]

	for i := low; i < high; i++ {
		if buf[i] < val {
			buf[i], buf[result] = buf[result], buf[i]
			result++
		}
	}

	buf[high] = buf[result]
	buf[result] = val

	return result
}
