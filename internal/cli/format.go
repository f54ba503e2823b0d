package cli

import "strconv"

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
