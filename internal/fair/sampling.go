package fair

// drawCursor walks a chain with a strictly increasing counter. Counter
// issuance is single-threaded within one derivation; independent labels get
// independent cursors and may run in parallel.
type drawCursor struct {
	chain   *Chain
	counter uint64
}

// uniform returns an unbiased index in [0, n) by rejection sampling: the
// first DrawBytes of each digest form a big-endian value v, and v is rejected
// whenever it falls in the truncated remainder range above the largest
// multiple of n below 2^(8*DrawBytes). Naive v % n would bias low indices;
// the rejection loop is part of the frozen protocol and must be reproduced
// exactly by any reimplementation.
func (d *drawCursor) uniform(n int) int {
	drawBytes := d.chain.params.DrawBytes
	maxVal := uint64(1) << (8 * drawBytes)
	limit := maxVal - maxVal%uint64(n)
	for {
		digest := d.chain.Draw(d.counter)
		d.counter++
		v := beUint(digest[:drawBytes])
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// permute runs a Fisher-Yates draw-without-replacement over indices 0..n-1.
// Each step consumes one accepted sample, in descending i order.
func (d *drawCursor) permute(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := d.uniform(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func beUint(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
