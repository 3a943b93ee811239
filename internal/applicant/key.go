package applicant

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/fadilmartias/careers/internal/util"
)

const (
	CategoryCV          = "cvs"
	CategoryCoverLetter = "cover_letters"
)

// ObjectKey names an upload <category>/<unix-millis>_<random base36>.<ext>.
// Two uploads of the same file name get different keys.
func ObjectKey(category, fileName string, now time.Time) string {
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	key := category + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
	if ext := util.DocumentExtension(fileName); ext != "" {
		key += "." + ext
	}
	return key
}
