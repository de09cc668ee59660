package memory

import (
	"fmt"
	"strings"

	"github.com/easeaico/shadow/internal/types"
)

var lineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Assemble renders records as "- [date] text" lines in retrieval order,
// separated by a blank line.
func Assemble(records []types.MemoryRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("- [%s] %s", rec.Date, lineFlattener.Replace(rec.Text)))
	}
	return strings.Join(lines, "\n\n")
}
