package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateVoucherCode builds a staff-scannable voucher code: a millisecond
// timestamp in base36 plus a random uuid-derived suffix. The code column
// carries a unique index, so a collision fails the insert instead of issuing
// two vouchers with the same code.
func GenerateVoucherCode() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "RWD-" + ts + "-" + suffix
}
