package report

import (
	"cmp"
	"slices"
)

// DenseRank ranks values in descending order. Equal values share a rank and
// the next distinct value's rank is exactly one greater.
func DenseRank(values []int) []int {
	distinct := slices.Clone(values)
	slices.SortFunc(distinct, func(a, b int) int { return cmp.Compare(b, a) })
	distinct = slices.Compact(distinct)

	rankOf := make(map[int]int, len(distinct))
	for i, v := range distinct {
		rankOf[v] = i + 1
	}

	ranks := make([]int, len(values))
	for i, v := range values {
		ranks[i] = rankOf[v]
	}
	return ranks
}

// PartitionedDenseRank computes DenseRank independently within each
// partition; partitions[i] names the partition of values[i].
func PartitionedDenseRank(values []int, partitions []string) []int {
	members := make(map[string][]int)
	for i, p := range partitions {
		members[p] = append(members[p], i)
	}

	ranks := make([]int, len(values))
	for _, idx := range members {
		sub := make([]int, len(idx))
		for j, i := range idx {
			sub[j] = values[i]
		}
		for j, r := range DenseRank(sub) {
			ranks[idx[j]] = r
		}
	}
	return ranks
}

// NTile returns the 1-based bucket of the row at position pos (0-based) when
// count ordered rows are split into n contiguous buckets. Bucket sizes differ
// by at most one and the larger buckets come first. When count < n only the
// first count buckets are used.
func NTile(pos, count, n int) int {
	if n <= 0 || count <= 0 {
		return 0
	}
	size, rem := count/n, count%n
	large := rem * (size + 1)
	if pos < large {
		return pos/(size+1) + 1
	}
	return rem + (pos-large)/size + 1
}

// PartitionTotals sums values per partition.
func PartitionTotals(values []int, partitions []string) map[string]int {
	totals := make(map[string]int)
	for i, p := range partitions {
		totals[p] += values[i]
	}
	return totals
}

// sortByRevenue orders metrics by total sales descending, then by key
// ascending so the result is independent of aggregation order.
func sortByRevenue(metrics []EntityMetrics) {
	slices.SortFunc(metrics, func(a, b EntityMetrics) int {
		if c := cmp.Compare(b.TotalSales, a.TotalSales); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
}

func sum(values []int) int {
	var total int
	for _, v := range values {
		total += v
	}
	return total
}
