package alloc

// NumPools is the number of configured size classes.
const NumPools = 6

// PoolSizes lists the bucket size of each class, smallest first.
var PoolSizes = [NumPools]uint32{8, 16, 32, 64, 128, 256}

// BlockSize is the arena region carved per pool block.
const BlockSize = 4096

// ClassFor returns the index of the smallest bucket that fits size, or -1
// when the request is too large for pooling and must use a span allocation.
func ClassFor(size uint32) int {
	for i, s := range PoolSizes {
		if size <= s {
			return i
		}
	}
	return -1
}
