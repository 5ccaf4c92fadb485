package output

import "github.com/rpgo/savings-projector/internal/calculation"

// DefaultAssumptions lists key modeling assumptions rendered when a comparison
// carries none (e.g. one decoded from an older JSON report).
var DefaultAssumptions = calculation.GenerateAssumptions()
