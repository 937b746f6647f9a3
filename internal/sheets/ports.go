package sheets

import (
	"context"

	"tally/internal/core"
)

// RecordExporter pushes the full ledger snapshot to a spreadsheet
// destination. It is an outbound collaborator: it consumes plain
// records and owns nothing.
type RecordExporter interface {
	Export(ctx context.Context, records []core.ExpenseRecord) error
}
