package format

import (
	"strings"

	"github.com/thoreinstein/airules/internal/section"
)

// Plain is the codec for files holding only the section body. The name
// lives in the filename.
type Plain struct {
	Extension string
}

// Ext implements Codec.
func (c Plain) Ext() string { return c.Extension }

// Encode implements Codec. The heading is not written.
func (c Plain) Encode(u Unit) ([]byte, error) {
	return []byte(Join(TrimBlank(u.Body))), nil
}

// Decode implements Codec. A heading at the top of a hand-written file is
// taken as the name.
func (c Plain) Decode(_ string, data []byte) (Unit, error) {
	var u Unit
	u.Name, u.Body = splitHeading(section.SplitLines(strings.TrimSpace(string(data))))
	return u, nil
}
